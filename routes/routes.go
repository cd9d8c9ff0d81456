package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "fixbay.io/fixbay/docs"
	"fixbay.io/fixbay/handlers"
	"fixbay.io/fixbay/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/swagger.json", serveOpenAPISpec).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/profile", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/change-password", handlers.ChangePassword).Methods("POST")

	// Platform-wide analytics sits outside the shop scope; the handler
	// enforces super_admin itself.
	api.HandleFunc("/platform/analytics", handlers.GetPlatformAnalytics).Methods("GET")

	// =====================================================
	// Shop-Scoped Routes (tenant resolved per request)
	// =====================================================
	shop := api.NewRoute().Subrouter()
	shop.Use(middleware.ShopScope)

	registerWorkOrderRoutes(shop)
	registerDamageRoutes(shop)
	registerCatalogRoutes(shop)
	registerCustomerRoutes(shop)
	registerFileRoutes(shop)

	shop.Handle("/analytics", middleware.RequirePermission("analytics:read")(
		http.HandlerFunc(handlers.GetShopAnalytics))).Methods("GET")

	// =====================================================
	// Admin Routes (back office)
	// =====================================================
	admin := shop.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	return r
}

// crudHandlers holds handlers for a CRUD resource
type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource.
// idVar names the path variable so nested resources can keep distinct
// variable names on one route tree.
func registerCRUDRoutes(router *mux.Router, path, resource, idVar string, h crudHandlers) {
	readPerm := resource + ":read"
	createPerm := resource + ":create"
	updatePerm := resource + ":update"
	deletePerm := resource + ":delete"

	router.Handle(path, middleware.RequirePermission(readPerm)(
		http.HandlerFunc(h.getAll))).Methods("GET")
	router.Handle(path, middleware.RequirePermission(createPerm)(
		http.HandlerFunc(h.create))).Methods("POST")
	if h.getOne != nil {
		router.Handle(path+"/{"+idVar+"}", middleware.RequirePermission(readPerm)(
			http.HandlerFunc(h.getOne))).Methods("GET")
	}
	router.Handle(path+"/{"+idVar+"}", middleware.RequirePermission(updatePerm)(
		http.HandlerFunc(h.update))).Methods("PUT")
	router.Handle(path+"/{"+idVar+"}", middleware.RequirePermission(deletePerm)(
		http.HandlerFunc(h.delete))).Methods("DELETE")
}

func registerWorkOrderRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/workorders", "workorder", "id", crudHandlers{
		getAll: handlers.GetAllWorkOrders,
		create: handlers.CreateWorkOrder,
		getOne: handlers.GetWorkOrder,
		update: handlers.UpdateWorkOrder,
		delete: handlers.DeleteWorkOrder,
	})

	api.Handle("/workorders/{id}/status", middleware.RequirePermission("workorder:update")(
		http.HandlerFunc(handlers.TransitionWorkOrderStatus))).Methods("POST")
	api.Handle("/workorders/{id}/totals", middleware.RequirePermission("workorder:read")(
		http.HandlerFunc(handlers.GetWorkOrderTotals))).Methods("GET")
	api.Handle("/workorders/{id}/activities", middleware.RequirePermission("workorder:read")(
		http.HandlerFunc(handlers.GetWorkOrderActivities))).Methods("GET")

	// Job lines
	api.Handle("/workorders/{id}/joblines", middleware.RequirePermission("jobline:read")(
		http.HandlerFunc(handlers.GetJobLines))).Methods("GET")
	api.Handle("/workorders/{id}/joblines", middleware.RequirePermission("jobline:create")(
		http.HandlerFunc(handlers.CreateJobLine))).Methods("POST")
	api.Handle("/joblines/{lineId}", middleware.RequirePermission("jobline:update")(
		http.HandlerFunc(handlers.UpdateJobLine))).Methods("PUT")
	api.Handle("/joblines/{lineId}", middleware.RequirePermission("jobline:delete")(
		http.HandlerFunc(handlers.DeleteJobLine))).Methods("DELETE")

	// Parts
	api.Handle("/workorders/{id}/parts/batch", middleware.RequirePermission("part:create")(
		http.HandlerFunc(handlers.BatchCreateParts))).Methods("POST")
	api.Handle("/parts/{partId}", middleware.RequirePermission("part:update")(
		http.HandlerFunc(handlers.UpdatePart))).Methods("PUT")
	api.Handle("/parts/{partId}/assign", middleware.RequirePermission("part:update")(
		http.HandlerFunc(handlers.AssignPart))).Methods("PUT")
	api.Handle("/parts/{partId}", middleware.RequirePermission("part:delete")(
		http.HandlerFunc(handlers.DeletePart))).Methods("DELETE")
}

func registerDamageRoutes(api *mux.Router) {
	api.Handle("/workorders/{id}/damage", middleware.RequirePermission("damage:read")(
		http.HandlerFunc(handlers.GetDamageAreas))).Methods("GET")
	api.Handle("/workorders/{id}/damage", middleware.RequirePermission("damage:create")(
		http.HandlerFunc(handlers.CreateDamageArea))).Methods("POST")
	api.Handle("/workorders/{id}/damage/bulk-delete", middleware.RequirePermission("damage:delete")(
		http.HandlerFunc(handlers.BulkDeleteDamageAreas))).Methods("POST")
	api.Handle("/workorders/{id}/damage/undo", middleware.RequirePermission("damage:update")(
		http.HandlerFunc(handlers.UndoDamageAction))).Methods("POST")
	api.Handle("/workorders/{id}/damage/redo", middleware.RequirePermission("damage:update")(
		http.HandlerFunc(handlers.RedoDamageAction))).Methods("POST")
	api.Handle("/damage/{damageId}", middleware.RequirePermission("damage:update")(
		http.HandlerFunc(handlers.UpdateDamageArea))).Methods("PUT")
	api.Handle("/damage/{damageId}", middleware.RequirePermission("damage:delete")(
		http.HandlerFunc(handlers.DeleteDamageArea))).Methods("DELETE")
}

func registerCatalogRoutes(api *mux.Router) {
	api.Handle("/catalog", middleware.RequirePermission("catalog:read")(
		http.HandlerFunc(handlers.GetServiceCatalog))).Methods("GET")
	api.Handle("/catalog/export", middleware.RequirePermission("catalog:read")(
		http.HandlerFunc(handlers.ExportServiceCatalog))).Methods("GET")

	api.Handle("/catalog/categories", middleware.RequirePermission("catalog:create")(
		http.HandlerFunc(handlers.CreateServiceCategory))).Methods("POST")
	api.Handle("/catalog/categories/{categoryId}", middleware.RequirePermission("catalog:update")(
		http.HandlerFunc(handlers.UpdateServiceCategory))).Methods("PUT")
	api.Handle("/catalog/categories/{categoryId}", middleware.RequirePermission("catalog:delete")(
		http.HandlerFunc(handlers.DeleteServiceCategory))).Methods("DELETE")

	api.Handle("/catalog/categories/{categoryId}/subcategories", middleware.RequirePermission("catalog:create")(
		http.HandlerFunc(handlers.CreateServiceSubcategory))).Methods("POST")
	api.Handle("/catalog/subcategories/{subcategoryId}", middleware.RequirePermission("catalog:update")(
		http.HandlerFunc(handlers.UpdateServiceSubcategory))).Methods("PUT")
	api.Handle("/catalog/subcategories/{subcategoryId}", middleware.RequirePermission("catalog:delete")(
		http.HandlerFunc(handlers.DeleteServiceSubcategory))).Methods("DELETE")

	api.Handle("/catalog/subcategories/{subcategoryId}/services", middleware.RequirePermission("catalog:create")(
		http.HandlerFunc(handlers.CreateCatalogService))).Methods("POST")
	api.Handle("/catalog/services/{serviceId}", middleware.RequirePermission("catalog:update")(
		http.HandlerFunc(handlers.UpdateCatalogService))).Methods("PUT")
	api.Handle("/catalog/services/{serviceId}", middleware.RequirePermission("catalog:delete")(
		http.HandlerFunc(handlers.DeleteCatalogService))).Methods("DELETE")
}

func registerCustomerRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/customers", "customer", "customerId", crudHandlers{
		getAll: handlers.GetAllCustomers,
		create: handlers.CreateCustomer,
		getOne: handlers.GetCustomer,
		update: handlers.UpdateCustomer,
		delete: handlers.DeleteCustomer,
	})

	api.Handle("/customers/{customerId}/vehicles", middleware.RequirePermission("vehicle:create")(
		http.HandlerFunc(handlers.CreateVehicle))).Methods("POST")
	api.Handle("/vehicles/{vehicleId}", middleware.RequirePermission("vehicle:update")(
		http.HandlerFunc(handlers.UpdateVehicle))).Methods("PUT")
	api.Handle("/vehicles/{vehicleId}", middleware.RequirePermission("vehicle:delete")(
		http.HandlerFunc(handlers.DeleteVehicle))).Methods("DELETE")
}

// registerFileRoutes registers file upload endpoints
func registerFileRoutes(api *mux.Router) {
	api.Handle("/files/upload", middleware.RequirePermission("file:create")(
		http.HandlerFunc(handlers.UploadPhoto))).Methods("POST")
}

// registerAdminRoutes registers back-office routes
func registerAdminRoutes(admin *mux.Router) {
	// User management
	registerCRUDRoutes(admin, "/users", "user", "userId", crudHandlers{
		getAll: handlers.GetAllUsers,
		create: handlers.CreateUser,
		getOne: handlers.GetUser,
		update: handlers.UpdateUser,
		delete: handlers.DeactivateUser,
	})

	// Trial and billing administration
	admin.Handle("/subscriptions", middleware.RequirePermission("subscription:read")(
		http.HandlerFunc(handlers.GetSubscriptions))).Methods("GET")
	admin.Handle("/subscriptions/trial", middleware.RequirePermission("subscription:manage")(
		http.HandlerFunc(handlers.StartTrial))).Methods("POST")
	admin.Handle("/subscriptions/{subscriptionId}/extend", middleware.RequirePermission("subscription:manage")(
		http.HandlerFunc(handlers.ExtendTrial))).Methods("POST")
	admin.Handle("/subscriptions/{subscriptionId}/cancel", middleware.RequirePermission("subscription:manage")(
		http.HandlerFunc(handlers.CancelSubscription))).Methods("POST")

	// Webhook delivery audit
	admin.Handle("/webhooks", middleware.RequirePermission("webhook:read")(
		http.HandlerFunc(handlers.GetWebhookLogs))).Methods("GET")
}

// serveOpenAPISpec serves the generated OpenAPI document.
func serveOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "spec unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
