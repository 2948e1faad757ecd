// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterRoutes attaches routes that need no dependencies.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the identity endpoints plus the protected /v1/me
// probe. Both attendee and staff roles may call /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	p := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ATTENDEE", "STAFF"))
	p.GET("/me", a.Me)
}

// RegisterBooking wires the booking endpoints behind JWT auth. Any
// authenticated role may reach them; eligibility of the caller's
// ticket is enforced by the service, not by the router.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ATTENDEE", "STAFF"))
	g.GET("/booking", b.GetBooking)
	g.POST("/booking", b.CreateBooking)
	g.PUT("/booking/:bookingId", b.UpdateBooking)
}

// RegisterPublic wires the unauthenticated catalog endpoints. The
// optional cache middleware (nil when Redis is unavailable) fronts
// both routes.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheMW echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{}
	if cacheMW != nil {
		mws = append(mws, cacheMW)
	}
	g := e.Group("/v1", mws...)
	g.GET("/hotels", p.GetHotels)
	g.GET("/hotels/:id/rooms", p.GetHotelRooms)
}
