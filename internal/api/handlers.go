package api

import (
	"errors"
	"image"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/youruser/wrapart/internal/compositor"
	"github.com/youruser/wrapart/internal/config"
	imagepkg "github.com/youruser/wrapart/internal/image"
	"github.com/youruser/wrapart/internal/panel"
	"github.com/youruser/wrapart/internal/scene"
)

const maxSceneSide = 4096

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func intQuery(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = "wrap:example"
	}
	b, err := imagepkg.GenerateQRPNG(text, intQuery(c, "size", 400))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// scene renders the backdrop at w x h so a style can be previewed
func sceneHandler(c *gin.Context) {
	w, h := intQuery(c, "w", 512), intQuery(c, "h", 256)
	if w <= 0 || h <= 0 || w > maxSceneSide || h > maxSceneSide {
		c.JSON(http.StatusBadRequest, gin.H{"error": "w and h must be between 1 and 4096"})
		return
	}
	style, err := scene.ParseStyle(c.Query("style"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := imagepkg.EncodePNG(scene.Paint(w, h, style))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// upload is a decoded template from a multipart form
type upload struct {
	img  *image.NRGBA
	name string
}

func templateFromForm(c *gin.Context) (*upload, bool) {
	fh, err := c.FormFile("template")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing template file"})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	defer f.Close()
	img, err := imagepkg.Decode(f)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return nil, false
	}
	return &upload{img: img, name: fh.Filename}, true
}

// classify finds the panel bounding box of an uploaded template, optionally
// within a column range
func classifyHandler(c *gin.Context) {
	tpl, ok := templateFromForm(c)
	if !ok {
		return
	}
	threshold := intQuery(c, "threshold", panel.DefaultThreshold)
	if v, err := strconv.Atoi(c.PostForm("threshold")); err == nil {
		threshold = v
	}
	if threshold < 0 || threshold > 255 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be 0-255"})
		return
	}
	span := panel.Span{}
	span.Min, _ = strconv.Atoi(c.PostForm("min_x"))
	if v, err := strconv.Atoi(c.PostForm("max_x")); err == nil {
		span.Max = &v
	}

	mask, err := panel.Classify(tpl.img, uint8(threshold))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	box, found := panel.BoundingBox(mask, &span)
	resp := gin.H{
		"width":    mask.W,
		"height":   mask.H,
		"panel_px": mask.Restrict(span).Count(),
		"found":    found,
	}
	if found {
		resp["bbox"] = box
	} else {
		resp["message"] = panel.ErrEmptyRegion.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// composite runs a built-in preset over an uploaded template and returns
// the PNG. Step outcomes travel in X-Wrap-Step headers.
func compositeHandler(c *gin.Context) {
	tpl, ok := templateFromForm(c)
	if !ok {
		return
	}
	name := c.DefaultPostForm("preset", "colorize")
	cfg, err := config.Preset(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comp, err := compositor.New(cfg, compositor.WithLogger(log.Logger))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	res, err := comp.Run(tpl.img)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, panel.ErrInvalidImage) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	b, err := imagepkg.EncodePNG(res.Canvas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, rep := range res.Reports {
		c.Writer.Header().Add("X-Wrap-Step", rep.String())
	}
	log.Info().Str("template", tpl.name).Str("preset", name).Int("steps", len(res.Reports)).Msg("composited upload")
	c.Data(http.StatusOK, "image/png", b)
}
