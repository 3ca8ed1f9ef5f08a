package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"sederhana", "Aljabar Dasar", "aljabar-dasar"},
		{"diakritik", "Café Métode", "cafe-metode"},
		{"simbol", "Bab 1: Pengenalan (Revisi)!", "bab-1-pengenalan-revisi"},
		{"spasi ganda", "  banyak   spasi  ", "banyak-spasi"},
		{"kosong", "", "materi"},
		{"hanya simbol", "!!!", "materi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in, 100))
		})
	}
}

func TestSlugifyMaxLen(t *testing.T) {
	got := Slugify("judul yang sangat panjang sekali", 10)
	assert.LessOrEqual(t, len(got), 10)
	assert.NotEqual(t, "-", got[len(got)-1:])
}
