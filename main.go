package main

import (
	"context"
	"fmt"
	"home-task-tracker/config"
	apiv1 "home-task-tracker/controllers/v1"
	"home-task-tracker/fiberlog"
	"home-task-tracker/initializers"
	"home-task-tracker/middleware"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
)

const (
	bodyLimit   = 1024 * 1024
	swaggerFile = "./docs/swagger.json"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())

	// docs/swagger.json is produced by `swag init` from the handler annotations
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: swaggerFile,
		}))
	} else {
		log.Info("swagger disabled, docs/swagger.json not found")
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(bodyLimit))
	apiv1.InitAuthApiRouters(apiV1)

	//profile
	profile := fiber.New()
	apiV1.Mount("/profile", profile)
	profile.Use(middleware.AuthorizationRequired())
	apiv1.InitProfileApiRouters(profile)

	//admin
	admin := fiber.New()
	apiV1.Mount("/admin", admin)
	admin.Use(middleware.AuthorizationRequired())
	admin.Use(middleware.AdminRequired())
	apiv1.InitAdminApiRouters(admin)
	apiv1.InitReportApiRouters(admin)

	//worker
	worker := fiber.New()
	apiV1.Mount("/worker", worker)
	worker.Use(middleware.AuthorizationRequired())
	worker.Use(middleware.WorkerRequired())
	apiv1.InitWorkerApiRouters(worker)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
