// README: JSON response helper shared by every handler. Grounded on the
// teacher's own base_handler.go write helpers, with the order-specific
// error-code mapping and ID-format validator dropped: the search entry
// point never returns an error status to the client (§7 "search entry
// point returns a valid, possibly empty response under every failure
// mode"), so there is no error taxonomy left to map here.
package handlers

import "github.com/gin-gonic/gin"

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}
