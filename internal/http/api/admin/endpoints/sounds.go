package endpoints

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/masjidtech/minaret/internal/http/api"
	"github.com/masjidtech/minaret/internal/http/api/admin/packets"
	"github.com/masjidtech/minaret/internal/model"
	"github.com/masjidtech/minaret/internal/scheduler"
	"github.com/masjidtech/minaret/internal/storage"
)

type SoundController struct {
	storage storage.Storage
	sched   *scheduler.Scheduler
}

func SoundModule(storageSystem storage.Storage, sched *scheduler.Scheduler) api.Module {
	ctl := &SoundController{storage: storageSystem, sched: sched}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/sounds", ctl.uploadSound)
	})
}

// POST /sounds replaces the adhan audio used for canonical prayer
// notifications.
func (s *SoundController) uploadSound(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing file"}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".wav" && ext != ".mp3" && ext != ".ogg" && ext != ".m4a" && ext != ".aac" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unsupported audio format"}
	}

	url, err := s.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store sound"}
	}

	s.sched.SetAdhanSound(url)

	return packets.SoundResponse{URL: url}, nil
}
