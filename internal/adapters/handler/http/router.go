package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(pollHandler *PollHandler, userHandler *UserHandler, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	requireAuth := RequireAuth(jwtSecret)
	optionalAuth := OptionalAuth(jwtSecret)

	r.Route("/api", func(r chi.Router) {
		r.Route("/polls", func(r chi.Router) {
			r.With(optionalAuth).Get("/", pollHandler.ListPolls)
			r.With(requireAuth).Post("/", pollHandler.CreatePoll)
			r.With(optionalAuth).Get("/{pollID}", pollHandler.GetPoll)
			r.With(requireAuth).Post("/{pollID}/votes", pollHandler.CastVote)
		})

		r.Route("/user", func(r chi.Router) {
			r.With(requireAuth).Get("/me", userHandler.GetMe)
			r.Get("/checkUsernameAvailability", userHandler.CheckUsernameAvailability)
			r.Get("/checkEmailAvailability", userHandler.CheckEmailAvailability)
		})

		r.Route("/users/{username}", func(r chi.Router) {
			r.Get("/", userHandler.GetProfile)
			r.With(optionalAuth).Get("/polls", userHandler.ListPollsCreatedBy)
			r.With(optionalAuth).Get("/votes", userHandler.ListPollsVotedBy)
		})
	})

	return r
}
