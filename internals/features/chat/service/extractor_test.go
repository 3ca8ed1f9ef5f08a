package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeBlob struct {
	data []byte
	err  error
	url  string
}

func (f *fakeBlob) ReadAll(ctx context.Context) ([]byte, error) { return f.data, f.err }
func (f *fakeBlob) PublicURL() string                           { return f.url }

func TestExtractFileContent_Image(t *testing.T) {
	blob := &fakeBlob{url: "https://cdn.example.com/storage/v1/object/public/media/materi/files/foto.png"}

	text, images := ExtractFileContent(context.Background(), blob, "materi/files/foto.png")

	assert.Equal(t, "[Gambar: foto.png]", text)
	require.Len(t, images, 1)
	assert.Equal(t, blob.url, images[0])
}

func TestExtractFileContent_ImageWithoutURL(t *testing.T) {
	text, images := ExtractFileContent(context.Background(), &fakeBlob{}, "diagram.jpeg")

	assert.Equal(t, "[Gambar: diagram.jpeg]", text)
	assert.Empty(t, images)
}

func TestExtractFileContent_ReadError(t *testing.T) {
	blob := &fakeBlob{err: errors.New("object not found")}

	text, images := ExtractFileContent(context.Background(), blob, "catatan.txt")

	assert.Contains(t, text, "[Error reading file catatan.txt:")
	assert.Contains(t, text, "object not found")
	assert.Empty(t, images)
}

func TestExtractFileContent_CSV(t *testing.T) {
	blob := &fakeBlob{data: []byte("nama,nilai\nAndi,90\nBudi,85\n")}

	text, images := ExtractFileContent(context.Background(), blob, "nilai.csv")

	assert.Equal(t, "nama, nilai\nAndi, 90\nBudi, 85", text)
	assert.Empty(t, images)
}

func TestExtractFileContent_TextLike(t *testing.T) {
	src := "def hello():\n    return \"dunia\"\n"
	blob := &fakeBlob{data: []byte(src)}

	text, _ := ExtractFileContent(context.Background(), blob, "contoh.py")

	assert.Equal(t, src, text)
}

func TestExtractFileContent_TextLatin1Fallback(t *testing.T) {
	// 0xE9 bukan UTF-8 valid berdiri sendiri; Latin-1 membacanya sebagai é.
	blob := &fakeBlob{data: []byte{'c', 'a', 'f', 0xE9}}

	text, _ := ExtractFileContent(context.Background(), blob, "kata.txt")

	assert.Equal(t, "café", text)
}

func TestExtractFileContent_FallbackTruncates(t *testing.T) {
	blob := &fakeBlob{data: []byte(strings.Repeat("a", 25_000))}

	text, _ := ExtractFileContent(context.Background(), blob, "log.unknown")

	assert.True(t, strings.HasSuffix(text, "\n... (truncated)"))
	assert.Len(t, []rune(strings.TrimSuffix(text, "\n... (truncated)")), fallbackReadLimit)
}

func TestExtractFileContent_FallbackEmptyFile(t *testing.T) {
	text, images := ExtractFileContent(context.Background(), &fakeBlob{data: []byte{}}, "kosong.unknown")

	assert.Equal(t, "", text)
	assert.Empty(t, images)
}

func TestExtractFileContent_FallbackBinary(t *testing.T) {
	blob := &fakeBlob{data: []byte{0x00, 0x01, 0x02, 0xFF, 0x00}}

	text, images := ExtractFileContent(context.Background(), blob, "program.exe")

	assert.Equal(t, "[File: program.exe (Type: .exe) - Content not extractable]", text)
	assert.Empty(t, images)
}

func TestExtractFileContent_CorruptPDF(t *testing.T) {
	blob := &fakeBlob{data: []byte("bukan pdf sama sekali")}

	text, images := ExtractFileContent(context.Background(), blob, "modul.pdf")

	assert.Contains(t, text, "[Error reading file modul.pdf:")
	assert.Empty(t, images)
}

// buildPDFDoc merakit PDF minimal dari daftar body object (nomor object =
// indeks+1) dengan tabel xref yang offsetnya dihitung. xrefAlias memetakan
// nomor object ke nomor object lain yang offsetnya dipakai, untuk mensimulasi
// cross-reference rusak.
func buildPDFDoc(t *testing.T, objects []string, xrefAlias map[int]int) []byte {
	t.Helper()
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefPos := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		off := offsets[i]
		if alias, ok := xrefAlias[i]; ok {
			off = offsets[alias]
		}
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefPos)
	return b.Bytes()
}

func pdfContentStream(body string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(body), body)
}

func TestExtractFileContent_PDFSkipsEmptyPage(t *testing.T) {
	data := buildPDFDoc(t, []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 5 0 R 7 0 R] /Count 3 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>",
		pdfContentStream("BT (Halaman satu) Tj ET"),
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 6 0 R >>",
		pdfContentStream(""),
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 8 0 R >>",
		pdfContentStream("BT (Halaman tiga) Tj ET"),
	}, nil)

	text, images := ExtractFileContent(context.Background(), &fakeBlob{data: data}, "modul.pdf")

	assert.Contains(t, text, "Page 1:")
	assert.Contains(t, text, "Halaman satu")
	assert.NotContains(t, text, "Page 2:")
	assert.Contains(t, text, "Page 3:")
	assert.Contains(t, text, "Halaman tiga")
	assert.Empty(t, images)
}

func TestExtractFileContent_PDFBadCrossReference(t *testing.T) {
	// Header, xref, dan trailer valid sehingga NewReader sukses, tapi entri
	// xref object 2 (Pages) menunjuk offset object 1. Resolusi halaman panic
	// di dalam library; kontrak tetap placeholder, bukan panic keluar.
	data := buildPDFDoc(t, []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}, map[int]int{2: 1})

	text, images := ExtractFileContent(context.Background(), &fakeBlob{data: data}, "rusak.pdf")

	assert.Contains(t, text, "[Error reading file rusak.pdf:")
	assert.Empty(t, images)
}

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractFileContent_Docx(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Bab satu</w:t></w:r><w:r><w:t> lanjutan</w:t></w:r></w:p>
    <w:p><w:r><w:t>Bab dua</w:t></w:r></w:p>
  </w:body>
</w:document>`
	blob := &fakeBlob{data: buildZip(t, map[string]string{"word/document.xml": doc})}

	text, _ := ExtractFileContent(context.Background(), blob, "modul.docx")

	assert.Equal(t, "Bab satu lanjutan\nBab dua", text)
}

func TestExtractFileContent_Pptx(t *testing.T) {
	slide1 := `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld><p:spTree>
    <p:sp>
      <p:nvSpPr><p:nvPr><p:ph type="ctrTitle"/></p:nvPr></p:nvSpPr>
      <p:txBody><a:p><a:r><a:t>Judul Presentasi</a:t></a:r></a:p></p:txBody>
    </p:sp>
    <p:sp>
      <p:txBody><a:p><a:r><a:t>Poin pertama</a:t></a:r></a:p></p:txBody>
    </p:sp>
  </p:spTree></p:cSld>
</p:sld>`
	slide2 := `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld><p:spTree>
    <p:sp>
      <p:txBody><a:p><a:r><a:t>Isi slide dua</a:t></a:r></a:p></p:txBody>
    </p:sp>
  </p:spTree></p:cSld>
</p:sld>`
	blob := &fakeBlob{data: buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": slide1,
		"ppt/slides/slide2.xml": slide2,
	})}

	text, _ := ExtractFileContent(context.Background(), blob, "paparan.pptx")

	assert.Equal(t, "Slide 1:\nTitle: Judul Presentasi\nPoin pertama\nSlide 2:\nIsi slide dua", text)
}

func TestExtractFileContent_Xlsx(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "nama"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "nilai"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Andi"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 90))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	text, _ := ExtractFileContent(context.Background(), &fakeBlob{data: buf.Bytes()}, "rekap.xlsx")

	assert.Equal(t, "Sheet: Sheet1\nnama\tnilai\nAndi\t90", text)
}
