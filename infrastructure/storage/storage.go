package storage

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var (
	ErrUnsupportedType = errors.New("tipo de arquivo não suportado, envie jpeg, png, gif ou webp")
	ErrTooLarge        = errors.New("arquivo acima do tamanho máximo permitido")
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

const fileIDSize = 16

// ImageStore guarda imagens de produtos e devolve a URL pública
type ImageStore interface {
	Save(ctx context.Context, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// LocalImageStore grava as imagens num diretório servido em URLPrefix
type LocalImageStore struct {
	fs        afero.Fs
	dir       string
	urlPrefix string
	maxBytes  int64
}

func NewLocalImageStore(fs afero.Fs, cfg config.Uploads) (*LocalImageStore, error) {
	if err := fs.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "erro ao criar diretório de uploads %s", cfg.Dir)
	}

	return &LocalImageStore{
		fs:        fs,
		dir:       cfg.Dir,
		urlPrefix: strings.TrimSuffix(cfg.URLPrefix, "/"),
		maxBytes:  cfg.MaxBytes,
	}, nil
}

// Save confere o tipo pelo conteúdo do arquivo, não pela extensão enviada
func (s *LocalImageStore) Save(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "erro ao ler arquivo enviado")
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowedTypes...) {
		return "", ErrUnsupportedType
	}

	name, err := utils.RandomFileName(fileIDSize, mime.Extension())
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar nome do arquivo")
	}

	if err := afero.WriteFile(s.fs, path.Join(s.dir, name), data, 0o644); err != nil {
		return "", errors.Wrap(err, "erro ao gravar arquivo")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"file": name,
		"mime": mime.String(),
		"size": len(data),
	}).Debug("Imagem armazenada")

	return s.urlPrefix + "/" + name, nil
}

// Delete remove a imagem de uma URL gerada por Save. URLs externas e arquivos
// inexistentes são ignorados.
func (s *LocalImageStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return nil
	}

	name := path.Base(url)
	if name == "." || name == "/" || name == ".." {
		return nil
	}

	err := s.fs.Remove(path.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "erro ao remover imagem %s", name)
	}

	log.ForContext(ctx).WithField("file", name).Debug("Imagem removida")
	return nil
}

// Handler serve os arquivos do diretório de uploads, sem listagem de diretório
func (s *LocalImageStore) Handler() http.Handler {
	files := afero.NewHttpFs(afero.NewBasePathFs(s.fs, s.dir))
	return http.StripPrefix(s.urlPrefix, http.FileServer(noDirListing{files}))
}

type noDirListing struct {
	fs http.FileSystem
}

func (n noDirListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}

	return f, nil
}
