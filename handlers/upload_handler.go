package handlers

import (
	"net/url"
	"strconv"
	"time"

	config "github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

const uploadFolder = "tutor_marketplace"

// UploadFile streams a multipart file to Cloudinary and returns the durable
// URL. Callers store that URL as an avatar, document, or payment proof
// reference; file content itself is never inspected here.
func UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "A file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer file.Close()

	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to initialize Cloudinary")
	}

	result, err := cld.Upload.Upload(c.Context(), file, uploader.UploadParams{
		Folder: uploadFolder,
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Upload failed")
	}

	return utils.Created(c, "File uploaded", fiber.Map{
		"url":       result.SecureURL,
		"public_id": result.PublicID,
		"file_name": fileHeader.Filename,
	})
}

// GenerateUploadSignature creates a secure signature for a direct frontend
// upload, so large files skip this server entirely.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to initialize Cloudinary")
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to parse Cloudinary URL")
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: uploadFolder,
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to prepare signature params")
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to sign upload params")
	}

	return utils.Success(c, "Signature generated", fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    uploadFolder,
	})
}
