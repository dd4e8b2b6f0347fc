package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"logistics-erp/logger"
	fileModel "logistics-erp/models/file"
	"logistics-erp/types"
)

const maxUploadFiles = 10

// FileController stores label uploads and returns the URLs they are served
// under.
type FileController struct {
	DB        *gorm.DB
	UploadDir string
}

// NewFileController creates a new file controller. uploadDir defaults to
// ./uploads when blank.
func NewFileController(db *gorm.DB, uploadDir string) *FileController {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &FileController{DB: db, UploadDir: uploadDir}
}

// Upload saves the multipart "files" field to the upload directory under
// collision-free names and records each file. The returned URLs go into the
// shipment's label_urls list by the client.
func (fc *FileController) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Multipart form is required",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "No files provided",
		})
	}
	if len(files) > maxUploadFiles {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: fmt.Sprintf("At most %d files per upload", maxUploadFiles),
		})
	}

	if err := os.MkdirAll(fc.UploadDir, os.ModePerm); err != nil {
		logger.Error("Failed to create upload directory", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Upload failed",
		})
	}

	warning := ""
	stored := make([]fileModel.File, 0, len(files))
	for _, fh := range files {
		name := uuid.New().String() + "_" + filepath.Base(fh.Filename)
		if err := c.SaveFile(fh, filepath.Join(fc.UploadDir, name)); err != nil {
			logger.Error("Failed to save uploaded file "+fh.Filename, err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Upload failed",
			})
		}

		record := fileModel.File{
			Filename: name,
			URL:      "/uploads/" + name,
		}
		if err := fc.DB.Create(&record).Error; err != nil {
			// The file is on disk and servable; the missing row is only
			// bookkeeping.
			logger.Warning("Failed to record uploaded file " + name + ": " + err.Error())
			warning = "file stored but not recorded"
		}
		stored = append(stored, record)
	}

	logger.Success(fmt.Sprintf("Stored %d uploaded files", len(stored)))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Files uploaded",
		Warning: warning,
		Data:    stored,
	})
}
