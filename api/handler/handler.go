package handler

import (
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"video-streaming/internal/entity"
	"video-streaming/internal/httprange"
	"video-streaming/internal/probe"
	"video-streaming/internal/repository"
	"video-streaming/internal/storage"
)

// The only content types admitted at intake. Declared types are trusted;
// there is no sniffing.
const (
	VideoContentType     = "video/mp4"
	ThumbnailContentType = "image/jpeg"
)

var (
	ErrMissingInput         = errors.New("both video and thumbnail files are required")
	ErrUnsupportedMediaType = errors.New("only mp4 video and jpeg image files are allowed")
)

type Handler struct {
	Videos *repository.VideoRepository
	Blobs  storage.BlobStorage
}

func (h *Handler) Hello(c echo.Context) error {
	return c.String(http.StatusOK, "Hello World!")
}

// Upload admits a video+thumbnail pair: validate declared types, write both
// blobs, then create the single metadata record. Validation happens before
// anything touches storage so a rejected upload never leaves a blob behind.
func (h *Handler) Upload(c echo.Context) error {
	videoFile, errVideo := c.FormFile("video")
	thumbnailFile, errThumbnail := c.FormFile("thumbnail")
	if errVideo != nil || errThumbnail != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ErrMissingInput.Error()})
	}

	if videoFile.Header.Get("Content-Type") != VideoContentType ||
		thumbnailFile.Header.Get("Content-Type") != ThumbnailContentType {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ErrUnsupportedMediaType.Error()})
	}

	videoPath, err := h.saveBlob(videoFile)
	if err != nil {
		c.Logger().Errorf("save video blob: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Video storage unavailable"})
	}

	thumbnailPath, err := h.saveBlob(thumbnailFile)
	if err != nil {
		c.Logger().Errorf("save thumbnail blob: %v", err)
		h.discardBlob(c, videoPath)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Video storage unavailable"})
	}

	videoSize, err := h.Blobs.Stat(videoPath)
	if err != nil {
		c.Logger().Errorf("stat video blob: %v", err)
		h.discardBlob(c, videoPath)
		h.discardBlob(c, thumbnailPath)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Video storage unavailable"})
	}

	video := entity.Video{
		ID:           uuid.NewString(),
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		URL:          videoPath,
		ThumbnailURL: thumbnailPath,
		SizeInKB:     int64(math.Round(float64(videoSize) / 1024)),
		Duration:     probe.Duration(videoPath),
	}

	if err := h.Videos.Create(c.Request().Context(), &video); err != nil {
		// Blobs written ahead of a failed create are orphans; they are
		// left for an out-of-band sweep rather than faking atomicity
		// across two stores.
		c.Logger().Errorf("create video record: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save video metadata"})
	}

	return c.JSON(http.StatusCreated, video)
}

func (h *Handler) saveBlob(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return h.Blobs.Write(storage.MakeKey(file.Filename), src)
}

// discardBlob removes a blob written for a request that is about to fail.
// Deletion errors are logged and swallowed so they never mask the failure
// being reported to the client.
func (h *Handler) discardBlob(c echo.Context, path string) {
	if err := h.Blobs.Delete(path); err != nil {
		c.Logger().Warnf("failed to delete blob %s: %v", path, err)
	}
}

// Stream serves a stored video in full or as a single byte range. The blob
// is statted per request so the response always frames the artifact's
// current size, and the window is forwarded through a bounded reader
// instead of being buffered.
func (h *Handler) Stream(c echo.Context) error {
	video, err := h.Videos.FindByID(c.Request().Context(), c.Param("videoId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Video not found"})
		}
		c.Logger().Errorf("find video: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch video"})
	}

	totalSize, err := h.Blobs.Stat(video.URL)
	if err != nil {
		c.Logger().Errorf("stat blob for video %s: %v", video.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Video storage unavailable"})
	}

	rangeSpec := c.Request().Header.Get("Range")
	if rangeSpec == "" {
		reader, err := h.Blobs.OpenRange(video.URL, 0, totalSize-1)
		if err != nil {
			c.Logger().Errorf("open blob for video %s: %v", video.ID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Video storage unavailable"})
		}
		defer reader.Close()

		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(totalSize, 10))
		return c.Stream(http.StatusOK, VideoContentType, reader)
	}

	rng, err := httprange.Parse(rangeSpec, totalSize)
	if err != nil {
		c.Response().Header().Set("Content-Range", httprange.Unsatisfiable(totalSize))
		return c.JSON(http.StatusRequestedRangeNotSatisfiable, map[string]string{"error": httprange.ErrInvalidRange.Error()})
	}

	reader, err := h.Blobs.OpenRange(video.URL, rng.Start, rng.End)
	if err != nil {
		c.Logger().Errorf("open blob range for video %s: %v", video.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Video storage unavailable"})
	}
	defer reader.Close()

	header := c.Response().Header()
	header.Set("Content-Range", rng.ContentRange(totalSize))
	header.Set("Accept-Ranges", "bytes")
	header.Set(echo.HeaderContentLength, strconv.FormatInt(rng.ChunkSize(), 10))
	return c.Stream(http.StatusPartialContent, VideoContentType, reader)
}

func (h *Handler) GetVideos(c echo.Context) error {
	videos, err := h.Videos.FindAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to fetch videos: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch videos"})
	}

	return c.JSON(http.StatusOK, videos)
}
