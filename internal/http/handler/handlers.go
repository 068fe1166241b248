package handler

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"pdfviewer/internal/chat"
	"pdfviewer/internal/model"
	"pdfviewer/internal/service"
	"pdfviewer/internal/storage"
	"pdfviewer/internal/viewer"
)

// flashRedirect sends the user back to the upload page with a one-shot
// message carried in the query string; there is no server-side session.
func flashRedirect(c *fiber.Ctx, message string) error {
	return c.Redirect("/?error="+url.QueryEscape(message), fiber.StatusSeeOther)
}

// Index renders the upload page with the recent files listing.
func Index(svc service.FileService, recentLimit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recent, err := svc.Recent(c.UserContext(), recentLimit)
		if err != nil {
			// The listing is decorative; an unreadable directory should not
			// take down the upload form.
			recent = nil
		}
		return c.Render("index", fiber.Map{
			"RecentFiles": recent,
			"Flash":       c.Query("error"),
		})
	}
}

// Upload accepts a multipart PDF (field name: file), validates and stores
// it, and redirects to the viewer. Every rejection becomes a flash message on
// the upload page; no partial state is left behind.
func Upload(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil || fh.Filename == "" {
			return flashRedirect(c, "No file selected")
		}

		f, err := fh.Open()
		if err != nil {
			return flashRedirect(c, "Could not read the uploaded file")
		}
		defer f.Close()

		sf, err := svc.Upload(c.UserContext(), f, fh.Filename, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyUpload):
				return flashRedirect(c, "No file selected")
			case errors.Is(err, service.ErrUnsupportedType):
				return flashRedirect(c, "Invalid file type. Please upload a PDF file.")
			case errors.Is(err, service.ErrTooLarge):
				return flashRedirect(c, "File is too large. The maximum size is 50 MB.")
			default:
				return flashRedirect(c, "Error uploading file. Please try again.")
			}
		}

		return c.Redirect("/view/"+url.PathEscape(sf.Key), fiber.StatusSeeOther)
	}
}

// ViewPDF renders the viewer page for a stored file key. Unknown or hostile
// keys bounce back to the index with a message.
func ViewPDF(svc service.FileService) fiber.Handler {
	bootJSON, _ := json.Marshal(viewer.Boot())

	return func(c *fiber.Ctx) error {
		key, err := url.PathUnescape(c.Params("key"))
		if err != nil {
			return flashRedirect(c, "File not found")
		}

		ok, err := svc.Exists(c.UserContext(), key)
		if err != nil || !ok {
			return flashRedirect(c, "File not found")
		}

		return c.Render("viewer", fiber.Map{
			"FileKey":     key,
			"DisplayName": storage.DisplayName(key),
			"BootConfig":  template.JS(bootJSON),
		})
	}
}

// ServePDF streams the raw PDF bytes for the in-browser renderer.
func ServePDF(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, perr := url.PathUnescape(c.Params("key"))
		if perr != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_KEY", "invalid file key")
		}

		rc, sf, err := svc.Open(c.UserContext(), key)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrInvalidKey):
				return writeError(c, fiber.StatusBadRequest, "INVALID_KEY", "invalid file key")
			case errors.Is(err, storage.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.SendStream(rc, int(sf.Size))
	}
}

// chatRequest is the JSON body of POST /chat.
type chatRequest struct {
	Message string              `json:"message"`
	History []model.ChatMessage `json:"history"`
	Context model.ChatContext   `json:"context"`
}

// chatResponse is the JSON reply of POST /chat.
type chatResponse struct {
	Response string `json:"response"`
}

// Chat forwards a message plus document context to the chat proxy. The proxy
// resolves every failure to a displayable string, so this handler only fails
// on malformed input.
func Chat(proxy *chat.Proxy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid chat request body")
		}
		if req.Message == "" {
			return writeError(c, fiber.StatusBadRequest, "MESSAGE_REQUIRED", "message is required")
		}

		reply := proxy.Complete(c.UserContext(), req.Message, req.History, req.Context)
		return c.JSON(chatResponse{Response: reply})
	}
}

// HealthCheck verifies the storage directory is readable.
func HealthCheck(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := svc.Recent(c.UserContext(), 1); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "storage unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
