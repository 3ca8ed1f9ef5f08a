package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&MateriUtamaModel{}, &SubMateriModel{}, &MateriFileModel{}))
	return db
}

func TestMateriBeforeCreate_SlugDariJudul(t *testing.T) {
	db := newTestDB(t)

	m := &MateriUtamaModel{MateriJudul: "Pengantar Fisika Dasar"}
	require.NoError(t, db.Create(m).Error)

	assert.NotEqual(t, uuid.Nil, m.MateriID)
	assert.Equal(t, "pengantar-fisika-dasar", m.MateriSlug)
}

func TestMateriBeforeCreate_SlugBentrokDapatSuffix(t *testing.T) {
	db := newTestDB(t)

	a := &MateriUtamaModel{MateriJudul: "Pengantar Kimia"}
	require.NoError(t, db.Create(a).Error)
	b := &MateriUtamaModel{MateriJudul: "Pengantar Kimia"}
	require.NoError(t, db.Create(b).Error)

	assert.Equal(t, "pengantar-kimia", a.MateriSlug)
	assert.Equal(t, "pengantar-kimia-2", b.MateriSlug)
}

func TestSubMateriBeforeCreate_UrutanBertambahPerMateri(t *testing.T) {
	db := newTestDB(t)

	m1 := &MateriUtamaModel{MateriJudul: "Materi Satu"}
	m2 := &MateriUtamaModel{MateriJudul: "Materi Dua"}
	require.NoError(t, db.Create(m1).Error)
	require.NoError(t, db.Create(m2).Error)

	s1 := &SubMateriModel{SubMateriMateriID: m1.MateriID, SubMateriJudul: "Bab A"}
	s2 := &SubMateriModel{SubMateriMateriID: m1.MateriID, SubMateriJudul: "Bab B"}
	s3 := &SubMateriModel{SubMateriMateriID: m2.MateriID, SubMateriJudul: "Bab C"}
	require.NoError(t, db.Create(s1).Error)
	require.NoError(t, db.Create(s2).Error)
	require.NoError(t, db.Create(s3).Error)

	assert.Equal(t, 1, s1.SubMateriUrutan)
	assert.Equal(t, 2, s2.SubMateriUrutan)
	// urutan di-scope per materi induk, bukan global
	assert.Equal(t, 1, s3.SubMateriUrutan)
}

func TestMateriFileBeforeCreate_UrutanBertambahPerSubMateri(t *testing.T) {
	db := newTestDB(t)

	m := &MateriUtamaModel{MateriJudul: "Materi"}
	require.NoError(t, db.Create(m).Error)
	sub := &SubMateriModel{SubMateriMateriID: m.MateriID, SubMateriJudul: "Bab"}
	require.NoError(t, db.Create(sub).Error)

	f1 := &MateriFileModel{MateriFileSubMateriID: sub.SubMateriID, MateriFileJudul: "Lampiran 1"}
	f2 := &MateriFileModel{MateriFileSubMateriID: sub.SubMateriID, MateriFileJudul: "Lampiran 2"}
	require.NoError(t, db.Create(f1).Error)
	require.NoError(t, db.Create(f2).Error)

	assert.Equal(t, 1, f1.MateriFileUrutan)
	assert.Equal(t, 2, f2.MateriFileUrutan)
}
