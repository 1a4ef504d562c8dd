package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/vincent-vinf/go-jsend"
	"go.uber.org/zap"

	"preview-planner/pkg/capture"
	"preview-planner/pkg/geometry"
	"preview-planner/pkg/ov"
	"preview-planner/pkg/planner"
	"preview-planner/pkg/screen"
	"preview-planner/pkg/storage"
	"preview-planner/pkg/utils"
	"preview-planner/pkg/utils/ps"
	"preview-planner/pkg/webdav"
)

const (
	webDavStart    = "start"
	webDavShutdown = "shutdown"
)

var (
	webdavPort = flag.Int("webdav-port", 9998, "webdav port")
	port       = flag.Int("port", 9999, "api port")
	storageDir = flag.String("dir", "./preview-planner", "profile storage dir")
	displayW   = flag.Int("display-width", 1080, "initial display width")
	displayH   = flag.Int("display-height", 1920, "initial display height")

	cancelWebdav context.CancelFunc
	cancelLock   sync.Mutex

	stg *storage.Storage

	// The planning core does no locking of its own; all handler access to
	// the demo session and its capture sequencer goes through sessionLock.
	sessionLock sync.Mutex
	session     *planner.Session
	machine     *capture.Machine

	logger *zap.SugaredLogger
)

func init() {
	logger = utils.GetLogger()
	flag.Parse()
}

func main() {
	defer logger.Sync()
	defer func() {
		if cancelWebdav != nil {
			cancelWebdav()
		}
	}()
	var err error

	// init storage
	stg, err = storage.New(*storageDir)
	if err != nil {
		logger.Fatal(err)
	}
	defer stg.Close()

	// init demo session
	session, err = planner.NewSession(screen.WidthMatch, geometry.Size{Width: *displayW, Height: *displayH})
	if err != nil {
		logger.Fatal(err)
	}
	machine = capture.NewMachine(&logTrigger{})

	// init gin
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(utils.Cors())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("page not found"))
	})

	apiRouter := r.Group("/api")

	apiRouter.POST("/plan", makePlan)
	apiRouter.GET("/status", getStatus)

	profileRouter := apiRouter.Group("/profile")
	profileRouter.GET("/:name", getProfile)
	profileRouter.GET("", listProfile)
	profileRouter.POST("", createProfile)
	profileRouter.PUT("", updateProfile)
	profileRouter.DELETE("/:name", deleteProfile)

	sessionRouter := apiRouter.Group("/session")
	sessionRouter.GET("", getSession)
	sessionRouter.PUT("/mode", setMode)

	captureRouter := apiRouter.Group("/capture")
	captureRouter.POST("/lock", lockFocus)
	captureRouter.POST("/result", processResult)
	captureRouter.POST("/unlock", unlockFocus)

	storageRouter := apiRouter.Group("/storage")
	storageRouter.PUT("/webdav", ctlWebdav)

	utils.ListenAndServe(r, *port)
}

// logTrigger stands in for the camera glue at the capture boundary: every
// request the sequencer would send to hardware is just logged.
type logTrigger struct{}

func (logTrigger) LockFocus() error {
	logger.Info("capture: lock focus requested")
	return nil
}

func (logTrigger) RunPrecapture() error {
	logger.Info("capture: precapture metering requested")
	return nil
}

func (logTrigger) CaptureStill() error {
	logger.Info("capture: still capture requested")
	return nil
}

func (logTrigger) UnlockFocus() error {
	logger.Info("capture: focus unlock requested")
	return nil
}

func makePlan(c *gin.Context) {
	var req ov.PlanRequest
	if err := c.Bind(&req); err != nil {
		return
	}

	captureSizes := req.CaptureSizes
	previewSizes := req.PreviewSizes
	sensor := 0
	if req.SensorOrientation != nil {
		sensor = *req.SensorOrientation
	}
	if req.Profile != "" {
		p, err := stg.GetProfile(req.Profile)
		if err != nil {
			internalErr(c, err)
			return
		}
		if p == nil {
			c.JSON(http.StatusBadRequest, jsend.SimpleErr("profile does not exist"))
			return
		}
		if len(captureSizes) == 0 {
			captureSizes = p.CaptureSizes
		}
		if len(previewSizes) == 0 {
			previewSizes = p.PreviewSizes
		}
		if req.SensorOrientation == nil {
			sensor = p.SensorOrientation
		}
	}

	rotation, err := geometry.RotationFromDegrees(req.Rotation)
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	sessionLock.Lock()
	defer sessionLock.Unlock()

	if req.Mode != "" {
		mode, err := screen.ParseMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
			return
		}
		display := geometry.Size{Width: req.DisplayWidth, Height: req.DisplayHeight}
		if err := session.SetMode(mode, display); err != nil {
			c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
			return
		}
	}

	plan, err := session.Plan(planner.Request{
		CaptureCandidates: captureSizes,
		PreviewCandidates: previewSizes,
		SensorOrientation: sensor,
		Rotation:          rotation,
		ViewWidth:         req.ViewWidth,
		ViewHeight:        req.ViewHeight,
		DisplayWidth:      req.DisplayWidth,
		DisplayHeight:     req.DisplayHeight,
	})
	if err != nil {
		// Bad geometry in the request (zero display width in full screen,
		// off-grid sensor orientation) is the caller's fault.
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}
	if plan.CaptureSize.IsZero() {
		logger.Warnf("no usable capture size for view %d*%d", req.ViewWidth, req.ViewHeight)
	}
	if !plan.PreviewSize.IsZero() && (plan.PreviewSize.Width < req.ViewWidth && plan.PreviewSize.Height < req.ViewHeight) {
		logger.Warnf("preview buffer %s smaller than view %d*%d", plan.PreviewSize, req.ViewWidth, req.ViewHeight)
	}

	c.JSON(http.StatusOK, jsend.Success(ov.PlanResponse{
		Mode:            session.Mode().String(),
		Swapped:         plan.Swapped,
		CaptureSize:     plan.CaptureSize,
		PreviewSize:     plan.PreviewSize,
		Transform:       geometry.RowMajor(plan.Transform),
		JPEGOrientation: plan.JPEGOrientation,
	}))
}

func getProfile(c *gin.Context) {
	p, err := stg.GetProfile(c.Param("name"))
	if err != nil {
		internalErr(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("profile not found"))
		return
	}

	c.JSON(http.StatusOK, jsend.Success(p))
}

func listProfile(c *gin.Context) {
	profiles, err := stg.ListProfiles()
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(profiles))
}

func createProfile(c *gin.Context) {
	var p ov.Profile
	if err := c.Bind(&p); err != nil {
		return
	}
	sensor, err := geometry.NormalizeOrientation(p.SensorOrientation)
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	existing, err := stg.GetProfile(p.Name)
	if err != nil {
		internalErr(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("profile already exists"))
		return
	}

	created, err := stg.NewProfile(&storage.Profile{
		Name:              p.Name,
		Info:              p.Info,
		SensorOrientation: sensor,
		CaptureSizes:      p.CaptureSizes,
		PreviewSizes:      p.PreviewSizes,
	})
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(created))
}

func updateProfile(c *gin.Context) {
	var p ov.Profile
	if err := c.Bind(&p); err != nil {
		return
	}
	sensor, err := geometry.NormalizeOrientation(p.SensorOrientation)
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	existing, err := stg.GetProfile(p.Name)
	if err != nil {
		internalErr(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("profile does not exist"))
		return
	}
	existing.Info = p.Info
	existing.SensorOrientation = sensor
	existing.CaptureSizes = p.CaptureSizes
	existing.PreviewSizes = p.PreviewSizes

	if err = stg.UpdateProfile(existing); err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(existing))
}

func deleteProfile(c *gin.Context) {
	name := c.Param("name")

	existing, err := stg.GetProfile(name)
	if err != nil {
		internalErr(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("profile does not exist"))
		return
	}

	if err = stg.DeleteProfile(name); err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(fmt.Sprintf("delete profile %s success", name)))
}

func getSession(c *gin.Context) {
	sessionLock.Lock()
	defer sessionLock.Unlock()

	c.JSON(http.StatusOK, jsend.Success(ov.SessionStatus{
		Mode:         session.Mode().String(),
		ScreenRatio:  session.Ratio(),
		CaptureState: machine.State(),
	}))
}

func setMode(c *gin.Context) {
	var req ov.ModeRequest
	if err := c.Bind(&req); err != nil {
		return
	}
	mode, err := screen.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	sessionLock.Lock()
	defer sessionLock.Unlock()

	display := geometry.Size{Width: req.DisplayWidth, Height: req.DisplayHeight}
	if err := session.SetMode(mode, display); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	c.JSON(http.StatusOK, jsend.Success(mode.String()))
}

func lockFocus(c *gin.Context) {
	sessionLock.Lock()
	defer sessionLock.Unlock()

	if err := machine.LockFocus(); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	c.JSON(http.StatusOK, jsend.Success(machine.State()))
}

func processResult(c *gin.Context) {
	var req ov.CaptureResult
	if err := c.Bind(&req); err != nil {
		return
	}

	result := capture.Result{}
	if req.AF != nil {
		af := capture.AFState(*req.AF)
		result.AF = &af
	}
	if req.AE != nil {
		ae := capture.AEState(*req.AE)
		result.AE = &ae
	}

	sessionLock.Lock()
	defer sessionLock.Unlock()

	if err := machine.Process(result); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	c.JSON(http.StatusOK, jsend.Success(machine.State()))
}

func unlockFocus(c *gin.Context) {
	sessionLock.Lock()
	defer sessionLock.Unlock()

	if err := machine.Unlock(); err != nil {
		c.JSON(http.StatusBadRequest, jsend.SimpleErr(err.Error()))
		return
	}

	c.JSON(http.StatusOK, jsend.Success(machine.State()))
}

func getStatus(c *gin.Context) {
	cpuStatus, err := ps.CPUStatus()
	if err != nil {
		internalErr(c, err)
		return
	}
	memStatus, err := ps.MemoryStatus()
	if err != nil {
		internalErr(c, err)
		return
	}
	diskStatus, err := ps.DiskStatus(stg.Dir())
	if err != nil {
		internalErr(c, err)
		return
	}
	used, err := ps.DirSize(stg.Dir())
	if err != nil {
		internalErr(c, err)
		return
	}

	c.JSON(http.StatusOK, jsend.Success(ov.Status{
		CPU:        cpuStatus,
		Memory:     memStatus,
		Disk:       diskStatus,
		StorageDir: stg.Dir(),
		StorageUse: humanize.IBytes(uint64(used)),
	}))
}

func ctlWebdav(c *gin.Context) {
	op := c.Query("op")
	switch op {
	case webDavStart:
		startWebdav(c)
	case webDavShutdown:
		shutdownWebdav(c)
	default:
		c.JSON(http.StatusBadRequest, jsend.SimpleErr("unknown operation"))
	}
}

func startWebdav(c *gin.Context) {
	cancelLock.Lock()
	defer cancelLock.Unlock()
	if cancelWebdav != nil {
		c.JSON(http.StatusOK, jsend.Success("the webdav service is already enabled"))
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	webdav.Serve(ctx, *webdavPort, *storageDir)
	cancelWebdav = cancel
	c.JSON(http.StatusOK, jsend.Success(c.Request.Host))
}

func shutdownWebdav(c *gin.Context) {
	cancelLock.Lock()
	defer cancelLock.Unlock()
	if cancelWebdav == nil {
		c.JSON(http.StatusOK, jsend.SimpleErr("the webdav service has been shut down"))
		return
	}
	cancelWebdav()
	cancelWebdav = nil

	c.JSON(http.StatusOK, jsend.Success(nil))
}

func internalErr(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, jsend.SimpleErr(err.Error()))
}
