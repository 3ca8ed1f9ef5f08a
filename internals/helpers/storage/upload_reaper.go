// internals/helpers/storage/upload_reaper.go
package storage

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Folder untuk upload transien dari editor (gambar inline yang belum tentu
// jadi dipakai di submateri). Object yang tidak direferensikan dibersihkan
// oleh reaper harian.
const uploadsPrefix = "uploads"

const uploadTTL = 48 * time.Hour

// StartUploadReaper menjadwalkan pembersihan harian object transien di bawah
// uploads/ yang lebih tua dari TTL.
func StartUploadReaper(svc *SupabaseService) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		if err := reapStaleUploads(svc); err != nil {
			log.Printf("[ERROR] Upload reaper gagal: %v", err)
		}
	})
	if err != nil {
		log.Printf("[ERROR] Gagal mendaftarkan upload reaper: %v", err)
		return c
	}
	c.Start()
	log.Println("🧹 Upload reaper dijadwalkan (harian)")
	return c
}

func reapStaleUploads(svc *SupabaseService) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	objects, err := svc.ListObjects(ctx, uploadsPrefix, 1000)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-uploadTTL)
	removed := 0
	for _, obj := range objects {
		if obj.CreatedAt.IsZero() || obj.CreatedAt.After(cutoff) {
			continue
		}
		key := uploadsPrefix + "/" + obj.Name
		if err := svc.DeleteObject(ctx, key); err != nil {
			log.Printf("[WARN] Gagal hapus %s: %v", key, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("🧹 Upload reaper menghapus %d object transien", removed)
	}
	return nil
}
