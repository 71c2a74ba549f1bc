package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	"quizcourse_backend/internals/features/taxonomy/controller"
	authMiddleware "quizcourse_backend/internals/middlewares/auth"
)

type crud interface {
	List(*fiber.Ctx) error
	GetByID(*fiber.Ctx) error
	Create(*fiber.Ctx) error
	Update(*fiber.Ctx) error
	Delete(*fiber.Ctx) error
}

// TaxonomyRoutes mounts tags, technologies, topics and bancas.
// Reads are open to any authenticated user, writes are admin only.
func TaxonomyRoutes(r fiber.Router, db *gorm.DB) {
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("a gestão de classificações"), constants.RoleAdmin)

	mount(r.Group("/tags"), controller.NewTagController(db), adminOnly)
	mount(r.Group("/technologies"), controller.NewTechnologyController(db), adminOnly)
	mount(r.Group("/topics"), controller.NewTopicController(db), adminOnly)
	mount(r.Group("/bancas"), controller.NewBancaController(db), adminOnly)
}

func mount(g fiber.Router, ctl crud, adminOnly fiber.Handler) {
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Patch("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
