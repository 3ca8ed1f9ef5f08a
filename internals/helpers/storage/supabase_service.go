// internals/helpers/storage/supabase_service.go
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"materiku_backend/internals/configs"
)

// Penanda segmen signed URL Supabase Storage. URL dengan segmen ini bersifat
// sementara dan harus ditulis ulang ke bentuk publik sebelum dibagikan keluar
// (mis. dikirim ke layanan LLM).
const signedSegment = "/storage/v1/s3/"

const publicSegment = "/storage/v1/object/public/"

// SupabaseService adalah klien tipis ke Supabase Storage (HTTP polos,
// service-role key). Satu instance per proses, aman dipakai concurrent.
type SupabaseService struct {
	BaseURL    string
	ServiceKey string
	Bucket     string
	HTTP       *http.Client
}

func NewSupabaseServiceFromEnv() (*SupabaseService, error) {
	base := strings.TrimRight(configs.SupabaseURL, "/")
	key := configs.SupabaseServiceKey
	if base == "" || key == "" {
		return nil, fmt.Errorf("SUPABASE_PROJECT_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}
	return &SupabaseService{
		BaseURL:    base,
		ServiceKey: key,
		Bucket:     configs.SupabaseBucket,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// UploadBytes menulis object ke bucket (PUT, overwrite jika sudah ada).
func (s *SupabaseService) UploadBytes(ctx context.Context, key, contentType string, data []byte) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.BaseURL, s.Bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("gagal membuat request upload: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("gagal mengirim request upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload gagal status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ReadObject mengambil seluruh isi object.
func (s *SupabaseService) ReadObject(ctx context.Context, key string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.BaseURL, s.Bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("read object gagal status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// DeleteObject menghapus satu object dari bucket.
func (s *SupabaseService) DeleteObject(ctx context.Context, key string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.BaseURL, s.Bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete gagal status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ObjectInfo adalah subset metadata hasil list object Supabase.
type ObjectInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListObjects mendaftar object di bawah prefix (untuk reaper upload transien).
func (s *SupabaseService) ListObjects(ctx context.Context, prefix string, limit int) ([]ObjectInfo, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", s.BaseURL, s.Bucket)

	payload, _ := json.Marshal(map[string]interface{}{
		"prefix": prefix,
		"limit":  limit,
		"offset": 0,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("list gagal status %d: %s", resp.StatusCode, string(body))
	}

	var out []ObjectInfo
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// PublicURL membangun URL publik stabil untuk sebuah object key.
func (s *SupabaseService) PublicURL(key string) string {
	// key sudah disanitasi saat upload, aman dipakai langsung di path
	return fmt.Sprintf("%s%s%s/%s", s.BaseURL, publicSegment, s.Bucket, key)
}

// SignedToPublic menulis ulang signed URL (/storage/v1/s3/...) menjadi URL
// publik stabil. URL tanpa penanda signed dikembalikan apa adanya; input
// kosong menghasilkan string kosong.
func (s *SupabaseService) SignedToPublic(raw string) string {
	return SignedToPublicURL(s.BaseURL, raw)
}

// SignedToPublicURL adalah bentuk bebas-instance dari SignedToPublic,
// dipakai juga oleh normalizer rich-text.
func SignedToPublicURL(baseURL, raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	idx := strings.Index(u.Path, signedSegment)
	if idx < 0 {
		return raw
	}
	relative := u.Path[idx+len(signedSegment):]
	return strings.TrimRight(baseURL, "/") + publicSegment + relative
}

// Object mengembalikan handle baca untuk satu object (lazy, baru fetch
// saat ReadAll dipanggil).
func (s *SupabaseService) Object(key string) ObjectReader {
	return &supabaseObject{svc: s, key: key}
}

// ObjectReader adalah kontrak minimal blob store yang dikonsumsi ekstraktor:
// baca seluruh isi + URL publik. Test bisa menyuplai implementasi palsu.
type ObjectReader interface {
	ReadAll(ctx context.Context) ([]byte, error)
	PublicURL() string
}

type supabaseObject struct {
	svc *SupabaseService
	key string
}

func (o *supabaseObject) ReadAll(ctx context.Context) ([]byte, error) {
	return o.svc.ReadObject(ctx, o.key)
}

func (o *supabaseObject) PublicURL() string {
	return o.svc.PublicURL(o.key)
}
