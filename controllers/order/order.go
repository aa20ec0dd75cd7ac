package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/services/email"
	"github.com/abhikadam2003/Ecommerce/store"
)

// -------- Request Structs --------

type PlaceOrderInput struct {
	ShippingAddress string `json:"shippingAddress"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// generateOrderRef builds a human-traceable order reference, e.g.
// 20250908130500-<uuid>.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// POST /api/orders
//
// Checkout is a sequence of independent writes (order insert, one stock
// decrement per line item, cart clear) with no transaction around them.
// Concurrent checkouts against the same product can each succeed even if
// their combined quantity exceeds stock.
func PlaceOrder(s store.Store, mailer *email.Sender, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input PlaceOrderInput
		_ = c.ShouldBindJSON(&input)
		input.ShippingAddress = strings.TrimSpace(input.ShippingAddress)

		if len(user.Cart) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
			return
		}
		if input.ShippingAddress == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "shippingAddress is required"})
			return
		}

		ids := make([]primitive.ObjectID, 0, len(user.Cart))
		for _, item := range user.Cart {
			ids = append(ids, item.Product)
		}
		products, err := s.ProductsByIDs(c.Request.Context(), ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		// Snapshot the cart: the line price is the cart's stored snapshot,
		// not a fresh product read.
		var items []models.OrderItem
		var total float64
		for _, item := range user.Cart {
			product, ok := products[item.Product]
			if !ok {
				continue // product deleted since it entered the cart
			}
			items = append(items, models.OrderItem{
				Product:  item.Product,
				Name:     product.Name,
				Quantity: item.Quantity,
				Price:    item.PriceSnapshot,
			})
			total += float64(item.Quantity) * item.PriceSnapshot
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
			return
		}

		order := &models.Order{
			Ref:             generateOrderRef(),
			User:            user.ID,
			Items:           items,
			Total:           total,
			Status:          models.OrderStatusPending,
			ShippingAddress: input.ShippingAddress,
		}
		if err := s.CreateOrder(c.Request.Context(), order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to place order"})
			return
		}

		for _, item := range items {
			if err := s.DecrementStock(c.Request.Context(), item.Product, item.Quantity); err != nil {
				log.WithError(err).WithField("product", item.Product.Hex()).
					Warn("Failed to decrement stock for ordered product")
			}
		}

		if err := s.SaveCart(c.Request.Context(), user.ID, nil); err != nil {
			log.WithError(err).WithField("user", user.ID.Hex()).
				Warn("Failed to clear cart after checkout")
		}

		// Confirmation mail is best-effort; failures never fail the order.
		mailer.SendOrderConfirmation(user.Email, order.Ref, order.Total)

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
	}
}

// GET /api/orders/me
func GetMyOrders(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		orders, err := s.OrdersByUser(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GET /api/orders  (admin)
//
// Every order, newest first, with the owning user's name/email expanded.
func GetAllOrders(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := s.ListOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}

		userIDs := make([]primitive.ObjectID, 0, len(orders))
		seen := make(map[primitive.ObjectID]bool)
		for _, o := range orders {
			if !seen[o.User] {
				seen[o.User] = true
				userIDs = append(userIDs, o.User)
			}
		}
		users, err := s.UsersByIDs(c.Request.Context(), userIDs)
		if err == nil {
			for i := range orders {
				if u, ok := users[orders[i].User]; ok {
					orders[i].UserDoc = &models.OrderUser{ID: u.ID, Name: u.Name, Email: u.Email}
				}
			}
		}

		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// PUT /api/orders/:id  (admin)
//
// The status must be one of the known values but any transition is
// accepted; there is no state machine over the enum.
func UpdateOrderStatus(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}

		var input UpdateOrderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		status, err := models.ParseOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		order, err := s.UpdateOrderStatus(c.Request.Context(), id, status)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}
