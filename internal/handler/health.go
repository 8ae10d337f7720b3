package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/infra"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health godoc
// @Summary      Estado del servicio
// @Description  Conectividad con la base de datos y Redis (si esta configurado), trabajos en la cola de fallidos y estado de los circuit breakers.
// @Tags         health
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Failure      503  {object} map[string]interface{}
// @Router       /health [get]
func Health(db *gorm.DB, rdb *redis.Client, breakers ...*infra.Breaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		var parked *int64
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			} else if n, err := worker.DeadLetterCount(ctx, rdb, worker.QueueSheets); err == nil {
				parked = &n
			}
		}

		status := http.StatusOK
		if dbStatus == "error" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		}
		if parked != nil {
			body["dead_letters"] = gin.H{worker.QueueSheets: *parked}
		}
		if len(breakers) > 0 {
			states := make(map[string]string, len(breakers))
			for _, b := range breakers {
				if b != nil {
					states[b.Name()] = b.State().String()
				}
			}
			body["breakers"] = states
		}
		c.JSON(status, body)
	}
}
