package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/courtkeeper/courtside/internal/service"
	"github.com/courtkeeper/courtside/pkg/response"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler { return &SessionHandler{svc: svc} }

func (h *SessionHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/sessions")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:code", h.get)
		g.GET("/:code/zones", h.classify)
		g.POST("/:code/join", h.join)
		g.POST("/:code/players", h.addPlayer)
		g.DELETE("/:code/players/:player_id", h.removePlayer)
		g.POST("/:code/start", h.startGame)
		g.POST("/:code/end", h.endGame)
		g.POST("/:code/clock/start", h.clockStart)
		g.POST("/:code/clock/pause", h.clockPause)
		g.POST("/:code/clock/reset-game", h.clockResetGame)
		g.POST("/:code/clock/reset-shot", h.clockResetShot)
		g.POST("/:code/actions", h.recordAction)
		g.POST("/:code/undo", h.undo)
		g.POST("/:code/team-stats", h.adjustTeamStat)
	}
}

type createSessionRequest struct {
	Name     string                `json:"name"`
	Password string                `json:"password"`
	Settings service.SettingsInput `json:"settings"`
}

func (h *SessionHandler) create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	session, err := h.svc.Create(c.Request.Context(), req.Name, req.Password, req.Settings)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, session)
}

func (h *SessionHandler) list(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *SessionHandler) get(c *gin.Context) {
	session, err := h.svc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, session)
}

func (h *SessionHandler) classify(c *gin.Context) {
	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	menu, err := h.svc.ClassifyTap(c.Request.Context(), c.Param("code"), x, y)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, menu)
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (h *SessionHandler) join(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	session, err := h.svc.Join(c.Request.Context(), c.Param("code"), req.Password)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, session)
}

type addPlayerRequest struct {
	Password string `json:"password"`
	Team     string `json:"team"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
}

func (h *SessionHandler) addPlayer(c *gin.Context) {
	var req addPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	player, err := h.svc.AddPlayer(c.Request.Context(), c.Param("code"), req.Password, req.Team, req.Name, req.Number)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, player)
}

type removePlayerRequest struct {
	Password string `json:"password"`
	Team     string `json:"team"`
}

func (h *SessionHandler) removePlayer(c *gin.Context) {
	var req removePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	err := h.svc.RemovePlayer(c.Request.Context(), c.Param("code"), req.Password, req.Team, c.Param("player_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// adminAction wraps the no-payload admin mutations so each route stays a
// one-liner.
func (h *SessionHandler) adminAction(c *gin.Context, fn func(code, password string) error) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	if err := fn(c.Param("code"), req.Password); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) startGame(c *gin.Context) {
	h.adminAction(c, func(code, pw string) error { return h.svc.StartGame(c.Request.Context(), code, pw) })
}

func (h *SessionHandler) endGame(c *gin.Context) {
	h.adminAction(c, func(code, pw string) error { return h.svc.EndGame(c.Request.Context(), code, pw) })
}

func (h *SessionHandler) clockStart(c *gin.Context) {
	h.adminAction(c, func(code, pw string) error { return h.svc.StartClock(c.Request.Context(), code, pw) })
}

func (h *SessionHandler) clockPause(c *gin.Context) {
	h.adminAction(c, func(code, pw string) error { return h.svc.PauseClock(c.Request.Context(), code, pw) })
}

func (h *SessionHandler) clockResetGame(c *gin.Context) {
	h.adminAction(c, func(code, pw string) error { return h.svc.ResetGameClock(c.Request.Context(), code, pw) })
}

func (h *SessionHandler) clockResetShot(c *gin.Context) {
	h.adminAction(c, func(code, pw string) error { return h.svc.ResetShotClock(c.Request.Context(), code, pw) })
}

type recordActionRequest struct {
	Password string                    `json:"password"`
	Action   service.RecordActionInput `json:"action"`
}

func (h *SessionHandler) recordAction(c *gin.Context) {
	var req recordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	action, err := h.svc.RecordAction(c.Request.Context(), c.Param("code"), req.Password, req.Action)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, action)
}

func (h *SessionHandler) undo(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	action, err := h.svc.Undo(c.Request.Context(), c.Param("code"), req.Password)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, action)
}

type adjustTeamStatRequest struct {
	Password string `json:"password"`
	Team     string `json:"team"`
	Kind     string `json:"kind"`
	Delta    int    `json:"delta"`
}

func (h *SessionHandler) adjustTeamStat(c *gin.Context) {
	var req adjustTeamStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res, err := h.svc.AdjustTeamStat(c.Request.Context(), c.Param("code"), req.Password, req.Team, req.Kind, req.Delta)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
