package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-manager/utils"
)

// ExportLoggerMiddleware records report downloads (CSV, PDF, PNG).
func ExportLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.Query("format")
		if format == "" || format == "json" {
			c.Next()
			return
		}

		fields := logrus.Fields{
			"report": c.FullPath(),
			"format": format,
			"start":  c.Query("start"),
			"end":    c.Query("end"),
		}
		utils.InfoLogger.WithFields(fields).Info("Generating report export")

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.WithFields(fields).Infof("Report export generated (%d bytes)", c.Writer.Size())
		} else {
			utils.ErrorLogger.WithFields(fields).Errorf("Report export failed with status %d", c.Writer.Status())
		}
	}
}
