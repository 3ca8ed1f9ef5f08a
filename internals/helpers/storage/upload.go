// internals/helpers/storage/upload.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var (
	// batas ukuran uploader di controller (guard ringan)
	maxUploadSize = int64(10 * 1024 * 1024)

	reUnsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
)

const (
	webpMaxW    = 1600
	webpMaxH    = 1600
	webpQuality = 80
)

// UploadImageAsWebP membaca gambar multipart (jpeg/png/webp), resize ke batas
// maksimal sambil menjaga rasio, re-encode WebP, lalu upload. Mengembalikan
// URL publik hasil upload.
func (s *SupabaseService) UploadImageAsWebP(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("file tidak ditemukan")
	}
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("ukuran file melebihi batas %d MB", maxUploadSize/(1024*1024))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("gagal membaca file gambar: %w", err)
	}

	img, err := decodeImage(all)
	if err != nil {
		return "", err
	}
	img = scaleDown(img, webpMaxW, webpMaxH)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("gagal encode webp: %w", err)
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := GenerateUniqueFilename(folder, base+".webp")
	if err := s.UploadBytes(ctx, key, "image/webp", buf.Bytes()); err != nil {
		return "", fmt.Errorf("upload gambar gagal: %w", err)
	}
	return s.PublicURL(key), nil
}

// UploadRawToDir mengupload file multipart apa adanya (dokumen dsb.) ke
// subfolder tertentu. Mengembalikan object key + content type (key disimpan
// di DB, bukan URL, supaya bucket bisa dipindah).
func (s *SupabaseService) UploadRawToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("file tidak ditemukan")
	}
	if fh.Size > maxUploadSize {
		return "", "", fmt.Errorf("ukuran file melebihi batas %d MB", maxUploadSize/(1024*1024))
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", "", fmt.Errorf("gagal membaca isi file: %w", err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := GenerateUniqueFilename(dir, fh.Filename)
	if err := s.UploadBytes(ctx, key, contentType, all); err != nil {
		return "", "", fmt.Errorf("upload file gagal: %w", err)
	}
	return key, contentType, nil
}

func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("file gambar kosong")
	}
	if img, err := jpeg.Decode(bytes.NewReader(all)); err == nil {
		return img, nil
	}
	if img, err := png.Decode(bytes.NewReader(all)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(all)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("format gambar tidak didukung (harus jpeg/png/webp)")
}

// scaleDown memperkecil gambar ke dalam kotak maxW x maxH (keep aspect).
// Gambar yang sudah muat dikembalikan tanpa diubah.
func scaleDown(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := float64(maxW) / float64(w)
	if sh := float64(maxH) / float64(h); sh < scale {
		scale = sh
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func sanitizeFilename(filename string) string {
	return reUnsafeFilename.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename membuat object key unik: <folder>/<tanggal>-<uuid>-<nama>.
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	uuidStr := uuid.New().String()
	safeFilename := sanitizeFilename(originalFilename)
	return fmt.Sprintf("%s/%s-%s-%s", strings.Trim(folder, "/"), timestamp, uuidStr, safeFilename)
}
