package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/config"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/store"
)

// ProductInput covers create and update. JSON and multipart form bodies
// both bind; pointer fields distinguish "absent" from zero on update.
type ProductInput struct {
	Name        *string  `json:"name" form:"name"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price"`
	Stock       *int     `json:"stock" form:"stock"`
	Category    *string  `json:"category" form:"category"`
	Images      []string `json:"images" form:"images"`
}

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if p.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	if p.Category.IsZero() {
		return errors.New("category is required")
	}
	return nil
}

// POST /api/products  (admin)
func CreateProduct(s store.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		product := &models.Product{}
		if input.Name != nil {
			product.Name = *input.Name
			product.Slug = models.Slugify(product.Name)
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.Category != nil && *input.Category != "" {
			catID, err := primitive.ObjectIDFromHex(*input.Category)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
				return
			}
			product.Category = catID
		}

		uploaded, err := saveUploadedImages(c, cfg.UploadDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save images"})
			return
		}
		product.Images = append(input.Images, uploaded...)

		if err := validateProduct(product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if err := s.CreateProduct(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
	}
}
