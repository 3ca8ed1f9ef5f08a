package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedToPublicURL(t *testing.T) {
	base := "https://proj.supabase.co"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"signed url ditulis ulang",
			"https://proj.supabase.co/storage/v1/s3/media/materi/files/modul.pdf",
			"https://proj.supabase.co/storage/v1/object/public/media/materi/files/modul.pdf",
		},
		{
			"url publik tidak berubah",
			"https://proj.supabase.co/storage/v1/object/public/media/foto.png",
			"https://proj.supabase.co/storage/v1/object/public/media/foto.png",
		},
		{
			"url eksternal tidak berubah",
			"https://example.com/gambar.png",
			"https://example.com/gambar.png",
		},
		{
			"kosong tetap kosong",
			"",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SignedToPublicURL(base, tt.raw))
		})
	}
}

func TestPublicURL(t *testing.T) {
	svc := &SupabaseService{BaseURL: "https://proj.supabase.co", Bucket: "media"}
	assert.Equal(t,
		"https://proj.supabase.co/storage/v1/object/public/media/materi/files/a.pdf",
		svc.PublicURL("materi/files/a.pdf"))
}
