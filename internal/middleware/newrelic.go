package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NoticeErrors returns middleware that reports errors recorded on the
// request context to the New Relic transaction started by nrgin.
// Handlers attach server-side failures via c.Error; client-caused
// rejections are not recorded and so never show up as errors in APM.
func NoticeErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		txn := nrgin.Transaction(c)
		if txn == nil {
			return
		}

		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
	}
}
