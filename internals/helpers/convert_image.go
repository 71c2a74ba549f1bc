package helper

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"quizcourse_backend/internals/configs"
	"quizcourse_backend/internals/constants"
)

const (
	MaxImageUploadSize = 5 * 1024 * 1024
	UploadsPublicPath  = "/uploads"
)

type WebPOptions struct {
	MaxW     int
	MaxH     int
	Quality  float32
	Lossless bool
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:    configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    configs.GetEnvInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: float32(configs.GetEnvInt("IMAGE_WEBP_QUALITY", 80)),
	}
}

// decodeImage sniffs jpeg/png/gif via imaging and webp via chai2010/webp.
func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	if strings.Contains(ct, "webp") || strings.EqualFold(filepath.Ext(filename), ".webp") {
		return webp.Decode(bytes.NewReader(all))
	}
	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("formato não suportado: %s: %w", ct, err)
	}
	return img, nil
}

// ConvertToWebP reads r, downsizes to fit MaxW x MaxH (keeping aspect) and encodes webp.
func ConvertToWebP(r io.Reader, filename string, opts WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if (opts.MaxW > 0 && b.Dx() > opts.MaxW) || (opts.MaxH > 0 && b.Dy() > opts.MaxH) {
		img = imaging.Fit(img, opts.MaxW, opts.MaxH, imaging.CatmullRom)
	}

	q := opts.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: opts.Lossless, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveImageAsWebP converts an uploaded image and stores it under
// UPLOAD_DIR/<folder>/<uuid>.webp. Returns the public path (/uploads/...).
func SaveImageAsWebP(fh *multipart.FileHeader, folder string) (string, error) {
	if fh == nil {
		return "", NewValidationError(FieldError{Field: "file", Message: "Arquivo de imagem é obrigatório."})
	}
	if fh.Size > MaxImageUploadSize {
		return "", NewValidationError(FieldError{Field: "file", Message: "A imagem deve ter no máximo 5MB."})
	}
	if !constants.IsImageFile(fh.Filename) {
		return "", NewValidationError(FieldError{Field: "file", Message: "Formato de imagem não suportado (use jpg, png ou webp)."})
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename, DefaultWebPOptions())
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Não foi possível processar a imagem.")
	}

	dir := filepath.Join(configs.UploadDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ".webp"
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}
	return path.Join(UploadsPublicPath, folder, name), nil
}

// RemoveUploaded deletes a file previously returned by SaveImageAsWebP.
// Foreign URLs and missing files are ignored.
func RemoveUploaded(publicPath string) {
	if !strings.HasPrefix(publicPath, UploadsPublicPath+"/") {
		return
	}
	rel := strings.TrimPrefix(publicPath, UploadsPublicPath+"/")
	if strings.Contains(rel, "..") {
		return
	}
	_ = os.Remove(filepath.Join(configs.UploadDir, filepath.FromSlash(rel)))
}
