// internals/features/chat/service/extractor.go
package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"materiku_backend/internals/helpers/storage"
)

// Ekstensi yang dibaca apa adanya sebagai teks (kode/markup umum).
var textLikeExt = map[string]struct{}{
	".txt": {}, ".py": {}, ".js": {}, ".html": {}, ".css": {}, ".java": {},
	".c": {}, ".cpp": {}, ".h": {}, ".md": {}, ".json": {}, ".xml": {},
	".sql": {}, ".sh": {}, ".bat": {},
}

// Batas baca untuk format yang tidak dikenal.
const fallbackReadLimit = 10_000

// ExtractFileContent mengekstrak teks + URL gambar dari satu object storage.
// Kontraknya: TIDAK PERNAH mengembalikan error. Kegagalan apa pun diubah
// jadi teks placeholder supaya satu file rusak tidak menggagalkan perakitan
// konteks materi secara keseluruhan.
//
// Dispatch berdasarkan ekstensi (lowercase). Gambar tidak dibaca isinya,
// hanya placeholder + URL publiknya (maksimal satu); format lain tidak
// pernah menghasilkan URL gambar.
func ExtractFileContent(ctx context.Context, blob storage.ObjectReader, filename string) (string, []string) {
	base := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(filename))

	// Gambar: jangan ekstrak pixel, cukup placeholder + URL publik.
	if mimeType := mime.TypeByExtension(ext); strings.HasPrefix(mimeType, "image/") {
		var imageURLs []string
		if blob != nil {
			if u := blob.PublicURL(); u != "" {
				imageURLs = append(imageURLs, u)
			}
		}
		return fmt.Sprintf("[Gambar: %s]", base), imageURLs
	}

	data, err := blob.ReadAll(ctx)
	if err != nil {
		return fmt.Sprintf("[Error reading file %s: %v]", base, err), nil
	}

	text, err := extractByExt(data, base, ext)
	if err != nil {
		return fmt.Sprintf("[Error reading file %s: %v]", base, err), nil
	}
	return text, nil
}

// extractByExt men-dispatch ekstraksi berdasarkan ekstensi. Parser format
// kantor bisa panic pada input korup (mis. cross-reference PDF yang menunjuk
// object salah lolos dari NewReader lalu panic saat halaman di-resolve);
// recover di satu pintu ini menjaga kontrak tidak-pernah-gagal untuk semua
// format sekaligus.
func extractByExt(data []byte, base, ext string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	switch ext {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDocx(data)
	case ".pptx":
		return extractPptx(data)
	case ".xlsx":
		return extractXlsx(data)
	case ".csv":
		return extractCSV(data)
	default:
		if _, ok := textLikeExt[ext]; ok {
			return decodeText(data), nil
		}
		return extractFallback(data, base, ext), nil
	}
}

// extractPDF membaca semua halaman berurutan; halaman tanpa teks dilewati
// (tidak ada label "Page N:" kosong). Error ekstraksi di satu halaman
// menggagalkan seluruh file; pemanggil yang mengubahnya jadi placeholder.
func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if pageText == "" {
			continue
		}
		pages = append(pages, fmt.Sprintf("Page %d:\n%s", i, pageText))
	}
	return strings.Join(pages, "\n"), nil
}

// extractDocx membaca word/document.xml dan menggabungkan teks tiap paragraf
// (<w:p>) dengan newline, tanpa membedakan heading/style.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml tidak ditemukan")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = inParagraph
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inParagraph {
					paragraphs = append(paragraphs, current.String())
					inParagraph = false
				}
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

var reSlideNum = regexp.MustCompile(`slide(\d+)\.xml$`)

type pptxShape struct {
	phType string
	text   string
}

// extractPptx membaca ppt/slides/slideN.xml berurutan. Tiap slide jadi blok
// "Slide N:" dengan baris "Title: ..." dulu bila ada shape placeholder judul,
// lalu teks shape lain yang tidak kosong (shape judul tidak diulang).
func extractPptx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pptx: %w", err)
	}

	type slideFile struct {
		num int
		f   *zip.File
	}
	var slides []slideFile
	for _, f := range zr.File {
		m := reSlideNum.FindStringSubmatch(f.Name)
		if m == nil || !strings.HasPrefix(f.Name, "ppt/slides/") {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides = append(slides, slideFile{num: n, f: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var blocks []string
	for i, s := range slides {
		shapes, err := parseSlideShapes(s.f)
		if err != nil {
			return "", err
		}

		titleIdx := -1
		for idx, sh := range shapes {
			if (sh.phType == "title" || sh.phType == "ctrTitle") && strings.TrimSpace(sh.text) != "" {
				titleIdx = idx
				break
			}
		}

		var lines []string
		if titleIdx >= 0 {
			lines = append(lines, "Title: "+strings.TrimSpace(shapes[titleIdx].text))
		}
		for idx, sh := range shapes {
			if idx == titleIdx {
				continue
			}
			if t := strings.TrimSpace(sh.text); t != "" {
				lines = append(lines, t)
			}
		}
		blocks = append(blocks, fmt.Sprintf("Slide %d:\n%s", i+1, strings.Join(lines, "\n")))
	}
	return strings.Join(blocks, "\n"), nil
}

func parseSlideShapes(f *zip.File) ([]pptxShape, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var shapes []pptxShape
	var current pptxShape
	spDepth := 0
	inText := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				if spDepth == 0 {
					current = pptxShape{}
				}
				spDepth++
			case "ph":
				if spDepth > 0 {
					for _, attr := range t.Attr {
						if attr.Name.Local == "type" {
							current.phType = attr.Value
						}
					}
				}
			case "t":
				inText = spDepth > 0
			}
		case xml.CharData:
			if inText {
				current.text += string(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				// akhir paragraf di dalam shape → baris baru
				if spDepth > 0 && current.text != "" && !strings.HasSuffix(current.text, "\n") {
					current.text += "\n"
				}
			case "sp":
				spDepth--
				if spDepth == 0 {
					current.text = strings.TrimRight(current.text, "\n")
					shapes = append(shapes, current)
				}
			}
		}
	}
	return shapes, nil
}

// extractXlsx: tiap worksheet jadi blok dengan header "Sheet: <nama>",
// sel kosong dibuang, sisa sel digabung tab, baris kosong dilewati.
// Antar sheet dipisah baris kosong.
func extractXlsx(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var blocks []string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", fmt.Errorf("baca sheet %s: %w", name, err)
		}
		lines := []string{"Sheet: " + name}
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				if cell != "" {
					cells = append(cells, cell)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, "\t"))
			}
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// extractCSV men-decode bytes (UTF-8, fallback Latin-1), parse sebagai CSV,
// dan menggabungkan ulang tiap baris dengan ", ".
func extractCSV(data []byte) (string, error) {
	r := csv.NewReader(strings.NewReader(decodeText(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, strings.Join(record, ", "))
	}
	return strings.Join(rows, "\n"), nil
}

// extractFallback mencoba baca teks maksimal 10k karakter untuk ekstensi yang
// tidak dikenal. File kosong menghasilkan string kosong (baca teks yang
// sukses, hanya tidak ada isinya); konten biner murni diberi placeholder
// "tidak dapat diekstrak".
func extractFallback(data []byte, base, ext string) string {
	if len(data) == 0 {
		return ""
	}
	if !isProbablyText(data) {
		return fmt.Sprintf("[File: %s (Type: %s) - Content not extractable]", base, ext)
	}

	s := decodeText(data)
	rs := []rune(s)
	if len(rs) >= fallbackReadLimit {
		s = string(rs[:fallbackReadLimit]) + "\n... (truncated)"
	}
	return s
}

// decodeText: coba UTF-8 dulu; kalau bukan UTF-8 valid, decode Latin-1
// (mapping byte-per-byte, tidak pernah gagal).
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// isProbablyText: heuristik byte printable/whitespace tanpa NUL.
func isProbablyText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}
