// Package webhook принимает входящие события чат-платформы по HTTP и передает
// их диспетчеру сессий. Платформа доставляет события каждого чата по порядку,
// роутер этот порядок сохраняет: Dispatch синхронно кладет событие в очередь
// сессии до ответа 200.
package webhook

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/avolkhin/shopbot/internal/transport/webhook/middlewares"
)

const (
	UpdateRoute  = "/webhook/:secret"
	MetricsRoute = "/metrics"
	HealthRoute  = "/health"
)

type RouterArgs struct {
	Logger *logrus.Logger
	// Secret — часть пути вебхука, запросы с другим значением отбрасываются.
	Secret     string
	Dispatcher Dispatcher
	Registry   *prometheus.Registry
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}

	handler := NewUpdateHandler(args.Secret, args.Dispatcher)
	r.POST(UpdateRoute, handler.Handle)

	if args.Registry != nil {
		r.GET(MetricsRoute, gin.WrapH(promhttp.HandlerFor(args.Registry, promhttp.HandlerOpts{})))
	}
	r.GET(HealthRoute, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}
