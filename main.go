package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/payments"
	"storefront/internal/store"
)

func main() {
	config.Load()
	logger := config.NewLogger(config.AppEnv)

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer database.Disconnect(client)

	db := client.Database(config.AppEnv.DBName)
	logger.Info().Str("db", db.Name()).Msg("mongodb connected")

	if err := database.EnsureProductIndexes(db); err != nil {
		logger.Warn().Err(err).Msg("product index warning")
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		logger.Warn().Err(err).Msg("user index warning")
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		logger.Warn().Err(err).Msg("order index warning")
	}
	if err := database.EnsurePaymentIndexes(db); err != nil {
		logger.Warn().Err(err).Msg("payment index warning")
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		logger.Warn().Err(err).Msg("cart index warning")
	}
	if err := database.EnsureAddressIndexes(db); err != nil {
		logger.Warn().Err(err).Msg("address index warning")
	}
	if err := database.EnsureSliderIndexes(db); err != nil {
		logger.Warn().Err(err).Msg("slider index warning")
	}

	s := store.New(db, logger)
	paypal := payments.NewPayPalClient(config.AppEnv.PayPal, logger)
	bakong := payments.NewBakongClient(config.AppEnv.Bakong, logger)
	telegram := notify.NewTelegram(config.AppEnv.Telegram, logger)

	secret := config.AppEnv.JWTSecret
	accessTTL := config.AppEnv.AccessTokenTTL

	r := gin.Default()

	r.GET("/products", handlers.GetProducts(s, logger))
	r.GET("/products/new-arrivals", handlers.GetNewArrivals(s, logger))
	r.GET("/products/slug/:slug", handlers.GetProductBySlug(s, logger))
	r.GET("/products/:id", handlers.GetProduct(s, logger))
	r.GET("/products/:id/related", handlers.GetRelatedProducts(s, logger))
	r.GET("/categories", handlers.GetCategories(s, logger))
	r.GET("/categories/tree", handlers.GetCategoryTree(s, logger))
	r.GET("/sliders", handlers.GetSliders(s, logger))
	r.GET("/faqs", handlers.GetFAQs(s, logger))
	r.GET("/faqs/search", handlers.SearchFAQs(s, logger))
	r.GET("/faqs/categories", handlers.GetFAQCategories(s, logger))

	r.POST("/auth/register", handlers.Register(s, secret, accessTTL, logger))
	r.POST("/auth/login", handlers.Login(s, secret, accessTTL, logger))
	r.GET("/auth/me", middleware.UserAuth(secret, logger), handlers.Me(s, logger))

	user := r.Group("/")
	user.Use(middleware.UserAuth(secret, logger))
	{
		user.GET("/cart", handlers.GetCart(s, logger))
		user.POST("/cart/items", handlers.AddToCart(s, logger))
		user.PUT("/cart/items/:lineId", handlers.UpdateCartItem(s, logger))
		user.DELETE("/cart/items/:lineId", handlers.RemoveCartItem(s, logger))
		user.DELETE("/cart", handlers.ClearCart(s, logger))

		user.GET("/wishlist", handlers.GetWishlist(s, logger))
		user.POST("/wishlist", handlers.AddToWishlist(s, logger))
		user.DELETE("/wishlist/:productId", handlers.RemoveFromWishlist(s, logger))

		user.GET("/addresses", handlers.GetAddresses(s, logger))
		user.POST("/addresses", handlers.CreateAddress(s, logger))
		user.GET("/addresses/:id", handlers.GetAddress(s, logger))
		user.PUT("/addresses/:id", handlers.UpdateAddress(s, logger))
		user.DELETE("/addresses/:id", handlers.DeleteAddress(s, logger))

		user.POST("/orders", handlers.Checkout(s, telegram, logger))
		user.GET("/orders", handlers.GetOrders(s, logger))
		user.GET("/orders/:id", handlers.GetOrder(s, logger))

		user.POST("/payments/paypal", handlers.CreatePayPalPayment(s, paypal, logger))
		user.POST("/payments/paypal/:id/capture", handlers.CapturePayPalPayment(s, paypal, telegram, logger))
		user.POST("/payments/bakong", handlers.CreateBakongPayment(s, bakong, logger))
		user.GET("/payments/bakong/:md5/status", handlers.CheckBakongPayment(s, bakong, telegram, logger))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(secret, logger))
	{
		admin.POST("/products", handlers.AdminCreateProduct(s, logger))
		admin.PUT("/products/:id", handlers.AdminUpdateProduct(s, logger))
		admin.DELETE("/products/:id", handlers.AdminDeleteProduct(s, logger))

		admin.POST("/categories", handlers.AdminCreateCategory(s, logger))
		admin.GET("/categories/:id", handlers.AdminGetCategory(s, logger))
		admin.PUT("/categories/:id", handlers.AdminUpdateCategory(s, logger))
		admin.DELETE("/categories/:id", handlers.AdminDeleteCategory(s, logger))

		admin.GET("/orders", handlers.AdminGetOrders(s, logger))
		admin.GET("/orders/:id", handlers.AdminGetOrder(s, logger))
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus(s, logger))
		admin.PUT("/orders/:id/payment-status", handlers.AdminUpdateOrderPaymentStatus(s, logger))
		admin.DELETE("/orders/:id", handlers.AdminDeleteOrder(s, logger))
		admin.GET("/payments", handlers.AdminGetPayments(s, logger))

		admin.GET("/sliders", handlers.AdminGetSliders(s, logger))
		admin.POST("/sliders", handlers.AdminCreateSlider(s, logger))
		admin.POST("/sliders/reorder", handlers.AdminReorderSliders(s, logger))
		admin.GET("/sliders/:id", handlers.AdminGetSlider(s, logger))
		admin.PUT("/sliders/:id", handlers.AdminUpdateSlider(s, logger))
		admin.DELETE("/sliders/:id", handlers.AdminDeleteSlider(s, logger))
		admin.POST("/sliders/:id/toggle-status", handlers.AdminToggleSliderStatus(s, logger))

		admin.GET("/faqs", handlers.AdminGetFAQs(s, logger))
		admin.POST("/faqs", handlers.AdminCreateFAQ(s, logger))
		admin.PUT("/faqs/:id", handlers.AdminUpdateFAQ(s, logger))
		admin.DELETE("/faqs/:id", handlers.AdminDeleteFAQ(s, logger))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
