package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/pinoyinvestor/travelhunter/internal/geo"
	"github.com/pinoyinvestor/travelhunter/internal/store"
	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

var validate = validator.New()

const (
	msgRateLimited = "Väder-API:t tycker vi frågar för snabbt just nu (429). Testa igen om en liten stund."
	msgFetchFailed = "Något gick fel när väderdata hämtades."
)

// Defaults fill in ranking parameters the caller leaves out.
type Defaults struct {
	Days        int
	Priority    weather.BasePriority
	Preferences weather.Preferences
}

type handler struct {
	service  *weather.Service
	origins  *geo.Resolver
	defaults Defaults
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, origins *geo.Resolver, defaults Defaults) {
	if origins == nil {
		origins = geo.NewResolver("", nil)
	}
	h := &handler{service: service, origins: origins, defaults: defaults}

	v1 := app.Group("/api/v1")

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "travelhunter",
		})
	})

	v1.Get("/destinations", h.destinations)

	v1.Get("/origins", func(c *fiber.Ctx) error {
		return c.JSON(geo.StartCities())
	})

	v1.Get("/rankings", h.rank)
	v1.Get("/rankings/latest", h.latest)
	v1.Get("/rankings/history", h.history)

	v1.Get("/follows", h.listFollows)
	v1.Get("/follows/itinerary", h.itinerary)
	v1.Put("/follows/:id", h.follow)
	v1.Delete("/follows/:id", h.unfollow)
	v1.Post("/follows/:id/toggle", h.toggle)
}

// ErrorHandler is the centralized fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internt fel."

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, message = fe.Code, fe.Message
	case errors.Is(err, weather.ErrRateLimited):
		code, message = fiber.StatusTooManyRequests, msgRateLimited
	case errors.Is(err, weather.ErrFetchFailed):
		code, message = fiber.StatusBadGateway, msgFetchFailed
	case errors.Is(err, store.ErrNotFound):
		code, message = fiber.StatusNotFound, "Ingen ranking finns ännu."
	case errors.Is(err, weather.ErrUnknownDestination):
		code, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, geo.ErrUnknownOrigin):
		code, message = fiber.StatusBadRequest, err.Error()
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

func (h *handler) rank(c *fiber.Ctx) error {
	var q rankingQuery
	if err := q.bind(c, h.defaults); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	origin, err := h.resolveOrigin(c, q.Origin, q.Lat, q.Lon)
	if err != nil {
		return err
	}

	req := weather.RankRequest{
		Days:        q.Days,
		Preferences: q.preferences,
		Priority:    weather.BasePriority(q.Priority),
		Refresh:     q.Refresh,
	}
	if q.Start != "" {
		req.StartDate, _ = time.Parse(weather.DateLayout, q.Start)
	}

	ranking, err := h.service.Rank(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(newRankingView(ranking, origin))
}

func (h *handler) latest(c *fiber.Ctx) error {
	lat, lon, err := parseCoords(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	origin, err := h.resolveOrigin(c, utils.CopyString(c.Query("origin")), lat, lon)
	if err != nil {
		return err
	}

	ranking, err := h.service.Latest()
	if err != nil {
		return err
	}
	return c.JSON(newRankingView(ranking, origin))
}

func (h *handler) history(c *fiber.Ctx) error {
	var req historyQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rankings, err := h.service.History(req.From, req.To)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Inga rankningar för perioden.")
		}
		return err
	}

	views := make([]rankingView, 0, len(rankings))
	for _, r := range rankings {
		views = append(views, newRankingView(r, nil))
	}
	return c.JSON(fiber.Map{
		"from":     req.From,
		"to":       req.To,
		"rankings": views,
	})
}

func (h *handler) destinations(c *fiber.Ctx) error {
	all := h.service.Catalog()
	out := make([]followView, 0, len(all))
	for _, d := range all {
		followed, err := h.service.IsFollowed(c.UserContext(), d.ID)
		if err != nil {
			return err
		}
		out = append(out, followView{Destination: d, Followed: followed})
	}
	return c.JSON(out)
}

func (h *handler) listFollows(c *fiber.Ctx) error {
	followed, err := h.service.Followed(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]followView, 0, len(followed))
	for _, d := range followed {
		out = append(out, followView{Destination: d, Followed: true})
	}
	return c.JSON(out)
}

func (h *handler) follow(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	if err := h.service.Follow(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id, "followed": true})
}

func (h *handler) unfollow(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	if err := h.service.Unfollow(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id, "followed": false})
}

func (h *handler) toggle(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	followed, err := h.service.ToggleFollow(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id, "followed": followed})
}

func (h *handler) itinerary(c *fiber.Ctx) error {
	it, err := h.service.Itinerary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(it)
}

// resolveOrigin prefers explicit coordinates over a named origin. No origin
// at all is fine and yields nil.
func (h *handler) resolveOrigin(c *fiber.Ctx, name string, lat, lon *float64) (*geo.Origin, error) {
	if lat != nil && lon != nil {
		o := geo.Position(*lat, *lon)
		return &o, nil
	}
	if name == "" {
		return nil, nil
	}
	o, err := h.origins.Resolve(c.UserContext(), name)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// rankingQuery holds query parameters for the rankings endpoint.
type rankingQuery struct {
	Start    string   `validate:"omitempty,datetime=2006-01-02"`
	Days     int      `validate:"min=1,max=10"`
	Priority string   `validate:"oneof=weather sun"`
	Prefs    []string `validate:"dive,oneof=sun party diving surf chill"`
	Origin   string
	Lat      *float64 `validate:"omitempty,min=-90,max=90"`
	Lon      *float64 `validate:"omitempty,min=-180,max=180"`
	Refresh  bool

	preferences weather.Preferences
}

func (q *rankingQuery) bind(c *fiber.Ctx, d Defaults) error {
	q.Start = c.Query("start")
	q.Origin = utils.CopyString(c.Query("origin"))
	q.Refresh = c.QueryBool("refresh", false)

	q.Days = d.Days
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("days must be an integer")
		}
		q.Days = n
	}

	q.Priority = string(d.Priority)
	if s := c.Query("priority"); s != "" {
		q.Priority = strings.ToLower(s)
	}

	q.preferences = d.Preferences
	if c.Context().QueryArgs().Has("prefs") {
		q.Prefs = nil
		for _, p := range strings.Split(c.Query("prefs"), ",") {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				q.Prefs = append(q.Prefs, p)
			}
		}
		q.preferences, _ = weather.ParsePreferences(strings.Join(q.Prefs, ","))
	}

	lat, lon, err := parseCoords(c)
	if err != nil {
		return err
	}
	q.Lat, q.Lon = lat, lon
	return nil
}

func parseCoords(c *fiber.Ctx) (*float64, *float64, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, nil, errors.New("lat and lon must be given together")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, nil, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, nil, errors.New("invalid lon")
	}
	return &lat, &lon, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
