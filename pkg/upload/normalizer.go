package upload

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/configs/configslog"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Uploader dosyayı kalıcı depoya yükleyip referansını (URL) döndürür.
type Uploader interface {
	Upload(ctx context.Context, f FileHandle) (string, error)
}

// ErrUnknownRef tanınmayan FileRef varyantı için döner.
var ErrUnknownRef = errors.New("tanınmayan dosya referansı")

const defaultParallelUploads = 4

// Normalizer FileRef değerlerini kalıcı referanslara çevirir. Sadece Pending
// değerler yüklenir; Persisted değerler aynen geçer.
type Normalizer struct {
	uploader    Uploader
	maxParallel int
}

// NewNormalizer yeni bir Normalizer oluşturur. maxParallel <= 0 ise varsayılan kullanılır.
func NewNormalizer(uploader Uploader, maxParallel int) *Normalizer {
	if maxParallel <= 0 {
		maxParallel = defaultParallelUploads
	}
	return &Normalizer{uploader: uploader, maxParallel: maxParallel}
}

// One tek bir alanı normalleştirir.
func (n *Normalizer) One(ctx context.Context, ref FileRef) (string, error) {
	switch v := ref.(type) {
	case nil:
		return "", nil
	case Persisted:
		return string(v), nil
	case Pending:
		if v.File == nil {
			return "", nil
		}
		url, err := n.uploader.Upload(ctx, v.File)
		if err != nil {
			configslog.Log.Warn("Dosya yüklenemedi", zap.String("file", v.File.Name()), zap.Error(err))
			return "", fmt.Errorf("%s yüklenemedi: %w", v.File.Name(), err)
		}
		return url, nil
	default:
		return "", ErrUnknownRef
	}
}

// Many listeyi paralel olarak normalleştirir. Sonuç sırası girdi sırasıyla aynıdır.
// Herhangi bir yükleme başarısız olursa kalanlar iptal edilir ve hata döner.
func (n *Normalizer) Many(ctx context.Context, refs []FileRef) ([]string, error) {
	out := make([]string, len(refs))
	if len(refs) == 0 {
		return out, nil
	}

	for i, ref := range refs {
		if IsPending(ref) {
			continue
		}
		s, err := n.One(ctx, ref)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.maxParallel)
	for i, ref := range refs {
		if !IsPending(ref) {
			continue
		}
		g.Go(func() error {
			s, err := n.One(gctx, ref)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
