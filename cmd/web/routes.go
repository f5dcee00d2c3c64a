package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/draft-pool/internal/catalog"
	"github.com/AdamBeresnev/draft-pool/internal/httputil"
	"github.com/AdamBeresnev/draft-pool/internal/middleware"
	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/service"
	"github.com/AdamBeresnev/draft-pool/internal/store"
	"github.com/AdamBeresnev/draft-pool/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const flashKey = "flash"

// parsePicks reads pick_1..pick_32 from a parsed form. Missing fields come back as "".
func parsePicks(r *http.Request) pool.PickMap {
	picks := make(pool.PickMap, pool.MaxPickNumber)
	for n := 1; n <= pool.MaxPickNumber; n++ {
		picks[n] = strings.TrimSpace(r.PostForm.Get("pick_" + strconv.Itoa(n)))
	}
	return picks
}

// teamParam returns the {team_name} segment decoded. chi matches against RawPath when the client
// escaped reserved characters like "," or "/", and then the parameter comes back still escaped.
func teamParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "team_name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

func newRouter(dbConn *sqlx.DB, sessionManager *scs.SessionManager, players *catalog.Catalog, adminKey string) http.Handler {
	poolStore := store.NewPoolStore(dbConn)
	scoring := service.NewFullRescore(poolStore)
	submissionService := service.NewSubmissionService(dbConn, poolStore, scoring, players)
	adminService := service.NewAdminService(dbConn, poolStore, scoring, players)
	standingsService := service.NewStandingsService(poolStore)
	exportService := service.NewExportService(poolStore)

	flash := func(r *http.Request, msg string) {
		sessionManager.Put(r.Context(), flashKey, msg)
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadAdmin(adminKey))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		nav := views.GetNav(r.Context())
		data := standingsService.GetStandings(r.Context())
		msg := sessionManager.PopString(r.Context(), flashKey)
		views.Render(w, r, views.Standings(views.PrepareStandings(nav, msg, data)))
	})

	r.Get("/enter_picks", func(w http.ResponseWriter, r *http.Request) {
		form := views.NewPicksForm(views.GetNav(r.Context()), players.Names(), pool.Submission{}, nil)
		views.Render(w, r, views.EnterPicks(form))
	})

	r.Post("/submit_picks", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, r, "Invalid form data", err)
			return
		}
		nav := views.GetNav(r.Context())
		in := pool.Submission{
			EntrantName: strings.TrimSpace(r.PostForm.Get("entrant_name")),
			TeamName:    strings.TrimSpace(r.PostForm.Get("team_name")),
			Tiebreaker:  strings.TrimSpace(r.PostForm.Get("tiebreaker")),
			Picks:       parsePicks(r),
		}

		entrant, err := submissionService.SubmitPicks(r.Context(), in)
		if err != nil {
			var verr *pool.ValidationError
			if errors.As(err, &verr) {
				form := views.NewPicksForm(nav, players.Names(), in, verr)
				views.RenderStatus(w, r, http.StatusUnprocessableEntity, views.EnterPicks(form))
				return
			}
			httputil.InternalServerError(w, r, "Failed to submit picks", err)
			return
		}

		flash(r, fmt.Sprintf("Picks submitted for %s!", entrant.Name))
		httputil.SeeOther(w, r, nav.URL("/"))
	})

	r.Get("/export.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="draft_pool.csv"`)
		if err := exportService.WriteCSV(r.Context(), w); err != nil {
			// Headers are already out, so all that is left is to log it
			slog.Error("Failed to write CSV export", "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbConn.PingContext(r.Context()); err != nil {
			slog.Error("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			nav := views.GetNav(r.Context())
			data, err := adminService.Panel(r.Context(), middleware.GetAdmin(r.Context()))
			if err != nil {
				httputil.InternalServerError(w, r, "Failed to load admin panel", err)
				return
			}
			views.Render(w, r, views.Admin(views.AdminPage{
				Nav:         nav,
				Flash:       sessionManager.PopString(r.Context(), flashKey),
				ActualPicks: data.ActualPicks,
				Entrants:    data.Entrants,
				PlayerNames: players.Names(),
				MaxPick:     pool.MaxPickNumber,
			}))
		})

		r.Post("/update_pick", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, r, "Invalid form data", err)
				return
			}
			nav := views.GetNav(r.Context())
			pickNumber, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("pick_number")))
			if err != nil {
				flash(r, pool.MsgPickOutOfRange)
				httputil.SeeOther(w, r, nav.URL("/admin"))
				return
			}
			player := strings.TrimSpace(r.PostForm.Get("player_name"))

			err = adminService.RecordActualPick(r.Context(), middleware.GetAdmin(r.Context()), pickNumber, player)
			if err != nil {
				var verr *pool.ValidationError
				if errors.As(err, &verr) {
					flash(r, verr.Message)
					httputil.SeeOther(w, r, nav.URL("/admin"))
					return
				}
				httputil.InternalServerError(w, r, "Failed to record pick", err)
				return
			}

			flash(r, fmt.Sprintf("Pick #%d set to %s.", pickNumber, player))
			httputil.SeeOther(w, r, nav.URL("/admin"))
		})

		r.Post("/delete_pick", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, r, "Invalid form data", err)
				return
			}
			nav := views.GetNav(r.Context())
			pickNumber, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("pick_number")))
			if err != nil {
				flash(r, pool.MsgPickOutOfRange)
				httputil.SeeOther(w, r, nav.URL("/admin"))
				return
			}

			err = adminService.ClearActualPick(r.Context(), middleware.GetAdmin(r.Context()), pickNumber)
			if err != nil {
				var verr *pool.ValidationError
				if errors.As(err, &verr) {
					flash(r, verr.Message)
					httputil.SeeOther(w, r, nav.URL("/admin"))
					return
				}
				httputil.InternalServerError(w, r, "Failed to clear pick", err)
				return
			}

			flash(r, fmt.Sprintf("Pick #%d cleared.", pickNumber))
			httputil.SeeOther(w, r, nav.URL("/admin"))
		})

		r.Post("/delete_team", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, r, "Invalid form data", err)
				return
			}
			nav := views.GetNav(r.Context())
			entrantID, err := uuid.Parse(r.PostForm.Get("entrant_id"))
			if err != nil {
				httputil.BadRequest(w, r, "Invalid entrant ID", err)
				return
			}

			err = adminService.DeleteEntrant(r.Context(), middleware.GetAdmin(r.Context()), entrantID)
			if err != nil {
				if errors.Is(err, service.ErrNotFound) {
					flash(r, "Entrant not found.")
					httputil.SeeOther(w, r, nav.URL("/admin"))
					return
				}
				httputil.InternalServerError(w, r, "Failed to delete entrant", err)
				return
			}

			flash(r, "Entrant deleted.")
			httputil.SeeOther(w, r, nav.URL("/admin"))
		})

		r.Post("/recalculate", func(w http.ResponseWriter, r *http.Request) {
			nav := views.GetNav(r.Context())
			if err := adminService.RecalculateAll(r.Context(), middleware.GetAdmin(r.Context())); err != nil {
				httputil.InternalServerError(w, r, "Failed to recalculate scores", err)
				return
			}
			flash(r, "All scores recalculated.")
			httputil.SeeOther(w, r, nav.URL("/admin"))
		})

		r.Get("/team_select", func(w http.ResponseWriter, r *http.Request) {
			teams, err := submissionService.TeamNames(r.Context(), middleware.GetAdmin(r.Context()))
			if err != nil {
				httputil.InternalServerError(w, r, "Failed to list teams", err)
				return
			}
			views.Render(w, r, views.TeamSelect(views.TeamSelectPage{Nav: views.GetNav(r.Context()), Teams: teams}))
		})

		r.Get("/edit_team/{team_name}", func(w http.ResponseWriter, r *http.Request) {
			nav := views.GetNav(r.Context())
			teamName, err := teamParam(r)
			if err != nil {
				httputil.BadRequest(w, r, "Invalid team name", err)
				return
			}

			team, err := submissionService.TeamPredictions(r.Context(), middleware.GetAdmin(r.Context()), teamName)
			if err != nil {
				if errors.Is(err, service.ErrNotFound) {
					page := views.NewEditTeamPage(nav, nil, teamName, nil, nil, nil)
					views.RenderStatus(w, r, http.StatusNotFound, views.EditTeam(page))
					return
				}
				httputil.InternalServerError(w, r, "Failed to load team", err)
				return
			}

			views.Render(w, r, views.EditTeam(views.NewEditTeamPage(nav, players.Names(), teamName, team, nil, nil)))
		})

		r.Post("/save_team/{team_name}", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, r, "Invalid form data", err)
				return
			}
			nav := views.GetNav(r.Context())
			admin := middleware.GetAdmin(r.Context())
			teamName, err := teamParam(r)
			if err != nil {
				httputil.BadRequest(w, r, "Invalid team name", err)
				return
			}
			picks := parsePicks(r)

			err = submissionService.SaveTeam(r.Context(), admin, teamName, picks)
			if err == nil {
				flash(r, fmt.Sprintf("Picks updated for team %s.", teamName))
				httputil.SeeOther(w, r, nav.URL("/"))
				return
			}

			var verr *pool.ValidationError
			switch {
			case errors.Is(err, service.ErrNotFound):
				page := views.NewEditTeamPage(nav, nil, teamName, nil, nil, nil)
				views.RenderStatus(w, r, http.StatusNotFound, views.EditTeam(page))
			case errors.As(err, &verr):
				team, terr := submissionService.TeamPredictions(r.Context(), admin, teamName)
				if terr != nil {
					httputil.InternalServerError(w, r, "Failed to reload team", terr)
					return
				}
				page := views.NewEditTeamPage(nav, players.Names(), teamName, team, picks, verr)
				views.RenderStatus(w, r, http.StatusUnprocessableEntity, views.EditTeam(page))
			default:
				httputil.InternalServerError(w, r, "Failed to save team", err)
			}
		})
	})

	return r
}
