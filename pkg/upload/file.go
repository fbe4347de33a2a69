package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileHandle yüklenmeyi bekleyen dosyanın soyutlamasıdır.
type FileHandle interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

var (
	ErrFileTooLarge       = errors.New("dosya boyutu sınırı aşıyor")
	ErrUnsupportedType    = errors.New("desteklenmeyen dosya türü")
	ErrEmptyFile          = errors.New("dosya boş")
	imageContentTypes     = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	documentContentTypes  = append([]string{"application/pdf"}, imageContentTypes...)
	extensionsByMediaType = map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"image/gif":       ".gif",
		"image/webp":      ".webp",
		"application/pdf": ".pdf",
	}
)

// MemoryFile içeriği bellekte tutulan dosyadır. Bir adım gönderilene kadar
// wizard oturumunda bekletilebilmesi için multipart dosyaları buna kopyalanır.
type MemoryFile struct {
	name        string
	contentType string
	data        []byte
}

// NewMemoryFile verilen içerikten dosya oluşturur.
func NewMemoryFile(name, contentType string, data []byte) *MemoryFile {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &MemoryFile{name: name, contentType: contentType, data: data}
}

func (f *MemoryFile) Name() string        { return f.name }
func (f *MemoryFile) Size() int64         { return int64(len(f.data)) }
func (f *MemoryFile) ContentType() string { return f.contentType }
func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// FromMultipart multipart başlığındaki dosyayı boyut sınırıyla okuyup MemoryFile döndürür.
// Gerçek içerik türü, istemcinin bildirdiği değer yerine içerikten tespit edilir.
func FromMultipart(fh *multipart.FileHeader, maxBytes int64) (*MemoryFile, error) {
	if fh == nil {
		return nil, ErrEmptyFile
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, fmt.Errorf("%w: %s (%d bayt)", ErrFileTooLarge, fh.Filename, fh.Size)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	reader := io.Reader(src)
	if maxBytes > 0 {
		reader = io.LimitReader(src, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, fh.Filename)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, fh.Filename)
	}

	// Tür istemcinin bildirdiğinden değil içerikten belirlenir; SVG gibi betik
	// taşıyabilen türler görsel kabul edilmez.
	contentType := http.DetectContentType(data)
	return NewMemoryFile(filepath.Base(fh.Filename), contentType, data), nil
}

// CheckImage dosyanın desteklenen bir görsel olup olmadığını kontrol eder.
func CheckImage(f FileHandle) error {
	return checkType(f, imageContentTypes)
}

// CheckDocument görsel veya PDF kabul eder.
func CheckDocument(f FileHandle) error {
	return checkType(f, documentContentTypes)
}

func checkType(f FileHandle, allowed []string) error {
	if f == nil {
		return ErrEmptyFile
	}
	ct := strings.ToLower(strings.TrimSpace(strings.Split(f.ContentType(), ";")[0]))
	for _, a := range allowed {
		if ct == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
}

// extensionFor içerik türüne uygun dosya uzantısını döndürür.
func extensionFor(f FileHandle) string {
	ct := strings.ToLower(strings.Split(f.ContentType(), ";")[0])
	if ext, ok := extensionsByMediaType[ct]; ok {
		return ext
	}
	if ext := strings.ToLower(filepath.Ext(f.Name())); ext != "" {
		return ext
	}
	return ".bin"
}
