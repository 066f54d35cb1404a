// Package mcpserver exposes the booking client as MCP tools.
package mcpserver

import (
	"context"

	"noebook-backend/internal/components/assert"
	"noebook-backend/internal/components/telemetry"
	"noebook-backend/internal/scrapers/noe"

	"github.com/mark3labs/mcp-go/server"
)

// BookingAPI is the part of *noe.Client the tools use.
type BookingAPI interface {
	GetSchedule(ctx context.Context, date string) (noe.Schedule, error)
	GetCredits(ctx context.Context) (int, error)
	GetMyBookings(ctx context.Context) ([]noe.Reservation, error)
	BookSlot(ctx context.Context, station, date, slotTime string) (noe.BookingResult, error)
	CancelBooking(ctx context.Context, station, date, slotTime string) (noe.CancelResult, error)
}

const instructions = "Books private stations, the open gym and the cardio room at the gym. " +
	"Dates are YYYY-MM-DD, times look like 6:00am. " +
	"Stations can be referred to by name (Noe 1) or id (140), call list_stations to see them."

// New creates an MCP server with every booking tool registered.
func New(api BookingAPI, version string, tel telemetry.API) *server.MCPServer {
	assert.NotNil("api", api)
	assert.NotNil("tel", tel)

	s := server.NewMCPServer("noebook", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	h := &handlers{
		api: api,
		tel: telemetry.NewScopedAPI("mcp", tel),
	}

	s.AddTools(
		server.ServerTool{Tool: toolGetSchedule, Handler: h.getSchedule},
		server.ServerTool{Tool: toolGetCredits, Handler: h.getCredits},
		server.ServerTool{Tool: toolGetMyBookings, Handler: h.getMyBookings},
		server.ServerTool{Tool: toolBookSlot, Handler: h.bookSlot},
		server.ServerTool{Tool: toolCancelBooking, Handler: h.cancelBooking},
		server.ServerTool{Tool: toolListStations, Handler: h.listStations},
	)

	return s
}

type handlers struct {
	api BookingAPI
	tel telemetry.API
}
