/* models.go
 * Contains the config, server and request/response structs of the HTTP front end
 * Authors: Zachary Bower
 */

package web

import (
	"arena-bot/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API

	// JWTSecret verifies the HS256 bearer tokens issued by the identity provider
	JWTSecret []byte
	// CORSOrigins lists the allowed browser origins. Empty allows every origin
	CORSOrigins []string
	// JoinRatePerMinute caps join requests per user. Zero disables the limit
	JoinRatePerMinute int
}

// Server is the HTTP server that handles the tournament routes
type Server struct {
	api     *api.API
	auth    *Authenticator
	limiter *joinLimiter
}

// NewServer builds a server from cfg
func NewServer(cfg Config) *Server {
	return &Server{
		api:     cfg.API,
		auth:    NewAuthenticator(cfg.JWTSecret),
		limiter: newJoinLimiter(cfg.JoinRatePerMinute),
	}
}

type createTournamentRequest struct {
	Name   string `json:"name"`
	Game   string `json:"game"`
	Season string `json:"season"`
}

type participantsRequest struct {
	ParticipantIDs []string `json:"participantIds"`
}

type reportMatchRequest struct {
	WinnerID *string  `json:"winnerId"`
	P1Score  *float64 `json:"p1Score"`
	P2Score  *float64 `json:"p2Score"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	Error string `json:"error"`
}
