package server

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/fermion/pkg/imageio"
	"github.com/df07/fermion/pkg/loaders"
	"github.com/df07/fermion/pkg/renderer"
	"github.com/df07/fermion/pkg/scene"
)

// MaxImageSize bounds the width and height of renders submitted over HTTP
const MaxImageSize = 650

// Server handles web requests for the ray tracer
type Server struct {
	port      int
	scenesDir string
	echo      *echo.Echo
	renders   *RenderManager
}

// NewServer creates a new web server. scenesDir may be empty when no scene
// files are available.
func NewServer(port int, scenesDir string) *Server {
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		echo:      echo.New(),
		renders:   NewRenderManager(16),
	}
	s.echo.HideBanner = true
	s.routes()
	return s
}

// RenderRequest selects a scene and optionally overrides its image parameters
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene id, e.g. "default" or "file:three-spheres"
	Width           int    `json:"width"`           // 0 keeps the scene's width
	Height          int    `json:"height"`          // 0 keeps the scene's height
	SamplesPerPixel int    `json:"samplesPerPixel"` // 0 keeps the scene's samples
	MaxDepth        int    `json:"maxDepth"`        // 0 keeps the scene's depth
	Concurrency     int    `json:"concurrency"`     // 0 uses every logical CPU
	Seed            int64  `json:"seed"`            // 0 is time based
}

// RenderResponse identifies a started render
type RenderResponse struct {
	ID     string `json:"id"`
	Scene  string `json:"scene"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ProgressResponse reports the state of a render
type ProgressResponse struct {
	ID        string  `json:"id"`
	Progress  float32 `json:"progress"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Done      bool    `json:"done"`
	ElapsedMs int64   `json:"elapsedMs"`
	Stats     *Stats  `json:"stats,omitempty"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	Workers         int     `json:"workers"`
	Batches         int     `json:"batches"`
	ElapsedMs       int64   `json:"elapsedMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

func (s *Server) routes() {
	e := s.echo
	e.Use(corsMiddleware)

	if info, err := os.Stat("static"); err == nil && info.IsDir() {
		e.Static("/", "static")
	}

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/inspect", s.handleInspect)
	e.POST("/api/renders", s.handleRender)
	e.POST("/api/renders/scene", s.handleRenderScene)
	e.GET("/api/renders/:id/progress", s.handleProgress)
	e.GET("/api/renders/:id/image", s.handleImage)
	e.GET("/api/renders/:id/console", s.handleConsole)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes grouped by category
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

// createScene resolves a scene id to a fresh scene
func (s *Server) createScene(id string) (*scene.Scene, error) {
	if id == "" {
		id = "default"
	}
	path, err := scene.FindSceneFile(s.scenesDir, id)
	if err == nil {
		return loaders.LoadSceneFile(path)
	}
	return scene.Create(id)
}

// handleSceneConfig returns the default parameters of a scene and the request limits
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           sceneObj.Width,
			"height":          sceneObj.Height,
			"samplesPerPixel": sceneObj.SamplesPerPixel,
			"maxDepth":        sceneObj.MaxDepth,
			"concurrency":     renderer.HardwareConcurrency(),
		},
		"limits": map[string]interface{}{
			"width":       map[string]int{"min": 1, "max": MaxImageSize},
			"height":      map[string]int{"min": 1, "max": MaxImageSize},
			"concurrency": map[string]int{"min": 1, "max": renderer.HardwareConcurrency()},
		},
	})
}

// applyRequest overrides scene parameters from a render request and checks limits
func applyRequest(s *scene.Scene, req *RenderRequest) error {
	if req.Width < 0 || req.Height < 0 || req.SamplesPerPixel < 0 || req.MaxDepth < 0 || req.Concurrency < 0 {
		return fmt.Errorf("parameters must not be negative")
	}
	if req.Width > 0 || req.Height > 0 {
		if req.Width > 0 {
			s.Width = req.Width
		}
		if req.Height > 0 {
			s.Height = req.Height
		}
		s.Camera.Config.AspectRatio = float32(s.Width) / float32(s.Height)
	}
	if req.SamplesPerPixel > 0 {
		s.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth > 0 {
		s.MaxDepth = req.MaxDepth
	}
	return checkImageSize(s)
}

func checkImageSize(s *scene.Scene) error {
	if s.Width > MaxImageSize || s.Height > MaxImageSize {
		return fmt.Errorf("width and height must be at most %d, got %dx%d", MaxImageSize, s.Width, s.Height)
	}
	return nil
}

func workerCount(requested int) int {
	hardware := renderer.HardwareConcurrency()
	if requested <= 0 || requested > hardware {
		return hardware
	}
	return requested
}

// handleRender starts rendering a named scene
func (s *Server) handleRender(c echo.Context) error {
	req := &RenderRequest{}
	if err := c.Bind(req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := applyRequest(sceneObj, req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	return s.startRender(c, req.Scene, sceneObj, req.Concurrency, req.Seed)
}

// handleRenderScene starts rendering a scene posted as a JSON document
func (s *Server) handleRenderScene(c echo.Context) error {
	q := c.QueryParams()
	concurrency, err := parseIntParam(q, "concurrency", 0, 0, 1024)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	seed, err := parseIntParam(q, "seed", 0, 0, 1<<31-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	sceneObj, err := loaders.LoadScene(c.Request().Body)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := checkImageSize(sceneObj); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	return s.startRender(c, "custom", sceneObj, concurrency, int64(seed))
}

func (s *Server) startRender(c echo.Context, name string, sceneObj *scene.Scene, concurrency int, seed int64) error {
	job, err := s.renders.Start(name, sceneObj, workerCount(concurrency), seed)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, RenderResponse{
		ID:     job.ID,
		Scene:  name,
		Width:  sceneObj.Width,
		Height: sceneObj.Height,
	})
}

func (s *Server) lookupRender(c echo.Context) (*RenderJob, error) {
	job, ok := s.renders.Get(c.Param("id"))
	if !ok {
		return nil, jsonError(c, http.StatusNotFound, "Unknown render: "+c.Param("id"))
	}
	return job, nil
}

// handleProgress reports progress and, once finished, statistics
func (s *Server) handleProgress(c echo.Context) error {
	job, err := s.lookupRender(c)
	if job == nil {
		return err
	}

	rc := job.Context
	stats := rc.Stats()
	response := ProgressResponse{
		ID:        job.ID,
		Progress:  rc.Progress(),
		Completed: rc.Completed(),
		Total:     stats.TotalPixels,
		ElapsedMs: stats.Elapsed.Milliseconds(),
	}

	select {
	case <-rc.Done():
		response.Done = true
		response.Stats = &Stats{
			TotalPixels:     stats.TotalPixels,
			Workers:         stats.Workers,
			Batches:         stats.Batches,
			ElapsedMs:       stats.Elapsed.Milliseconds(),
			PixelsPerSecond: stats.PixelsPerSecond,
		}
	default:
	}

	return c.JSON(http.StatusOK, response)
}

// handleImage returns the current buffer as a PNG, optionally scaled
func (s *Server) handleImage(c echo.Context) error {
	job, err := s.lookupRender(c)
	if job == nil {
		return err
	}

	rc := job.Context
	q := c.QueryParams()
	width, err := parseIntParam(q, "width", rc.Width(), 1, 2000)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	height, err := parseIntParam(q, "height", rc.Height(), 1, 2000)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	img, err := imageio.FromBuffer(rc.Snapshot(), rc.Width(), rc.Height())
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}
	if width != rc.Width() || height != rc.Height() {
		img = imageio.Scale(img, width, height)
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, imageio.PNG); err != nil {
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleConsole returns the render's log messages after the given cursor
func (s *Server) handleConsole(c echo.Context) error {
	job, err := s.lookupRender(c)
	if job == nil {
		return err
	}

	since, err := parseIntParam(c.QueryParams(), "since", 0, 0, 1<<31-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	messages, next := job.Console.Since(since)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
		"next":     next,
	})
}

// handleInspect casts a ray through one pixel of a scene and describes what it hits
func (s *Server) handleInspect(c echo.Context) error {
	sceneObj, err := s.createScene(c.QueryParam("scene"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := sceneObj.Initialize(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	q := c.QueryParams()
	x, err := parseIntParam(q, "x", -1, 0, sceneObj.Height-1)
	if err != nil || x < 0 {
		return jsonError(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	y, err := parseIntParam(q, "y", -1, 0, sceneObj.Width-1)
	if err != nil || y < 0 {
		return jsonError(c, http.StatusBadRequest, "Invalid y coordinate")
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, x, y))
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
