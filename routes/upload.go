package routes

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"catalog/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const (
	imageField   = "image"
	maxImageSize = 2 << 20 // 2 MiB
)

// UploadRouter stores images under dir. Files are never linked to a product
// here; callers set image_url themselves.
type UploadRouter struct {
	dir    string
	events Publisher
}

func NewUploadRouter(dir string, events Publisher) *UploadRouter {
	return &UploadRouter{dir: dir, events: events}
}

func (u *UploadRouter) Register(group fiber.Router) {
	group.Post("/image", u.image)
}

type uploadResult struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
}

// POST /api/upload/image
func (u *UploadRouter) image(c *fiber.Ctx) error {
	file, err := c.FormFile(imageField)
	if err != nil {
		return errValidation("No file uploaded")
	}
	if err := checkImage(file); err != nil {
		return err
	}

	filename := imageFilename(imageField, file.Filename, time.Now())
	if err := c.SaveFile(file, filepath.Join(u.dir, filename)); err != nil {
		return fmt.Errorf("save upload: %w", err)
	}
	log.Infof("Stored upload %s (%d bytes)", filename, file.Size)

	u.events.Publish(models.NewEvent(models.ImageUploaded, 0, filename))
	return c.JSON(envelope{
		Success: true,
		Message: "File uploaded successfully",
		Data: uploadResult{
			URL:          "/uploads/" + filename,
			Filename:     filename,
			OriginalName: file.Filename,
			Size:         file.Size,
		},
	})
}

// checkImage accepts a part whose declared type is image/* and whose
// content sniffs as an image, up to maxImageSize bytes.
func checkImage(file *multipart.FileHeader) error {
	if !strings.HasPrefix(file.Header.Get(fiber.HeaderContentType), "image/") {
		return errInvalidFileType()
	}
	if file.Size > maxImageSize {
		return errPayloadTooLarge()
	}

	f, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("detect upload type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return errInvalidFileType()
	}
	return nil
}

// imageFilename builds "{field}-{unix millis}-{uuid}{ext}".
func imageFilename(field, original string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s%s", field, now.UnixMilli(), uuid.NewString(), filepath.Ext(original))
}
