package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tlms_backend/internal/service"
	"tlms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// MediaController 课时媒体上传，供讲师在创作时使用
type MediaController struct {
	Storage *service.StorageService
}

func NewMediaController(storage *service.StorageService) *MediaController {
	return &MediaController{Storage: storage}
}

// @Summary 上传课时媒体（视频/PDF）
// @Tags 媒体
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "媒体文件"
// @Success 201 {object} util.Response
// @Router /api/media [post]
func (c *MediaController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	// 深度校验 MIME 类型，不信任文件扩展名
	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimePDF, util.MimeOctetStream})
	if err != nil {
		util.BadRequest(ctx, "仅支持视频或 PDF 文件")
		return
	}
	if mimeType == util.MimeOctetStream && !hasVideoExtension(fileHeader.Filename) {
		util.BadRequest(ctx, "仅支持视频或 PDF 文件")
		return
	}

	// 落地临时文件便于 ffprobe 探测
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("tlms_upload_%d%s", time.Now().UnixNano(), filepath.Ext(fileHeader.Filename)))
	if err := ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	claims := util.GetUserFromContext(ctx)
	objectName := fmt.Sprintf("lessons/%d/%d%s", claims.UserID, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))

	url, err := c.Storage.UploadFile(ctx.Request.Context(), objectName, tmpPath, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	result := gin.H{"url": url, "mimeType": mimeType, "size": fileHeader.Size}
	if util.IsVideo(mimeType) || hasVideoExtension(fileHeader.Filename) {
		if info, err := util.GetVideoInfo(tmpPath); err == nil {
			result["duration"] = info.Duration
			result["width"] = info.Width
			result["height"] = info.Height
		}
	}

	util.Created(ctx, result)
}

func hasVideoExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range util.AllowedVideoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
