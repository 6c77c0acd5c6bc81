// Mock RedCircle API server for local development and integration testing.
// Dispatches on the "type" query parameter the way the real API does.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

var products = map[string]gin.H{
	"78025470": {
		"request_info": gin.H{"success": true},
		"product": gin.H{
			"tcin":  "78025470",
			"title": "Wireless Bluetooth Headphones",
			"link":  "https://www.target.com/p/-/A-78025470",
			"price": gin.H{"value": 39.99, "currency": "USD"},
		},
	},
	"13860428": {
		"request_info": gin.H{"success": true},
		"product": gin.H{
			"tcin":  "13860428",
			"title": "Stainless Steel Water Bottle",
			"link":  "https://www.target.com/p/-/A-13860428",
			"price": gin.H{"value": 12.49, "currency": "USD"},
		},
	},
}

var barcodes = map[string]string{
	"036000291452": "78025470",
}

func main() {
	router := gin.Default()

	router.GET("/request", func(c *gin.Context) {
		if c.Query("api_key") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error_code": "UNAUTHORIZED", "message": "missing api_key"})
			return
		}

		switch c.Query("type") {
		case "product":
			handleProduct(c)
		case "store_stock":
			handleStoreStock(c)
		case "search":
			handleSearch(c)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_TYPE"})
		}
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	slog.Info("Starting mock RedCircle server", "port", port)
	if err := router.Run(":" + port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func handleProduct(c *gin.Context) {
	tcin := c.Query("tcin")
	if gtin := c.Query("gtin"); gtin != "" {
		tcin = barcodes[gtin]
	}

	if payload, ok := products[tcin]; ok {
		c.JSON(http.StatusOK, payload)
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error_code": "PRODUCT_NOT_FOUND", "message": "product not found"})
}

func handleStoreStock(c *gin.Context) {
	tcin := c.Query("tcin")
	if _, ok := products[tcin]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error_code": "PRODUCT_NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_info": gin.H{"success": true},
		"in_store_stock": []gin.H{
			{"store_id": "1234", "store_name": "Hollywood Galaxy", "quantity": 5},
			{"store_id": "5678", "store_name": "LA Downtown", "quantity": 0},
		},
	})
}

func handleSearch(c *gin.Context) {
	term := c.Query("search_term")
	if term == "empty" {
		c.JSON(http.StatusOK, gin.H{
			"request_info":   gin.H{"success": true},
			"search_results": []gin.H{},
			"pagination":     gin.H{"current_page": 1, "total_pages": 1, "total_results": 0},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_info": gin.H{"success": true},
		"search_results": []gin.H{
			{"position": 1, "product": products["78025470"]["product"]},
			{"position": 2, "product": products["13860428"]["product"]},
		},
		"pagination": gin.H{"current_page": 1, "total_pages": 1, "total_results": 2},
	})
}
