package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"boutique-backend/models"
	"boutique-backend/pipelines"
	"boutique-backend/taxonomy"
	"boutique-backend/utils"
)

// Products per page on the admin list screen.
const productsPerPage = 2

// productLookup populates the type and category references.
var productLookup = []bson.M{
	{"$lookup": bson.M{
		"from":         "types",
		"localField":   "type",
		"foreignField": "_id",
		"as":           "type",
	}},
	{"$unwind": "$type"},
	{"$lookup": bson.M{
		"from":         "categories",
		"localField":   "category",
		"foreignField": "_id",
		"as":           "category",
	}},
	{"$unwind": "$category"},
}

// GetProducts lists a page of products matching the query filters, together
// with the taxonomy the product form needs.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := ctrl.DB.Collection("products")

	productsCount, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		ctrl.Log.Errorw("failed to count products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
		return
	}

	filters := utils.NewAPIFilters(c.Request.URL.Query()).Search().Filter()
	query := filters.Query()

	filteredCount, err := collection.CountDocuments(ctx, query)
	if err != nil {
		ctrl.Log.Errorw("failed to count filtered products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
		return
	}

	pipeline := []bson.M{{"$match": query}}
	pipeline = append(pipeline, productLookup...)
	pipeline = append(pipeline,
		bson.M{"$sort": bson.D{{Key: "createdAt", Value: -1}}},
		bson.M{"$skip": int64(productsPerPage * (filters.Page() - 1))},
		bson.M{"$limit": int64(productsPerPage)},
	)

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		ctrl.Log.Errorw("failed to list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.ProductView{}
	if err = cursor.All(ctx, &products); err != nil {
		ctrl.Log.Errorw("failed to decode products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
		return
	}

	// The product form needs the full taxonomy for its selects.
	catCursor, err := ctrl.DB.Collection("categories").Aggregate(ctx, categoryLookup)
	if err != nil {
		ctrl.Log.Errorw("failed to list categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
		return
	}
	defer catCursor.Close(ctx)
	categories := []models.CategoryView{}
	if err = catCursor.All(ctx, &categories); err != nil {
		ctrl.Log.Errorw("failed to decode categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
		return
	}

	typeCursor, err := ctrl.DB.Collection("types").Find(ctx, bson.M{})
	if err != nil {
		ctrl.Log.Errorw("failed to list types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
		return
	}
	defer typeCursor.Close(ctx)
	types := []models.Type{}
	if err = typeCursor.All(ctx, &types); err != nil {
		ctrl.Log.Errorw("failed to decode types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"types":                 types,
		"categories":            categories,
		"totalPages":            utils.TotalPages(int(filteredCount), productsPerPage),
		"productsCount":         productsCount,
		"filteredProductsCount": filteredCount,
		"products":              products,
	})
}

// CreateProduct adds a catalog item under an active type and category. New
// products start inactive until images are uploaded.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.Name == "" || req.Description == "" || req.Price == nil || req.Stock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "All required fields must be provided"})
		return
	}
	if req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The product type is required"})
		return
	}
	if req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The product category is required"})
		return
	}

	parentType, parentCategory, ok := ctrl.resolveTaxonomy(ctx, c, req.Type, req.Category)
	if !ok {
		return
	}

	collection := ctrl.DB.Collection("products")
	slug := utils.Slugify(req.Name)
	var duplicate models.Product
	if err := collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&duplicate); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "A product with this name already exists"})
		return
	}

	now := time.Now()
	product := models.Product{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Type:        parentType.ID,
		Category:    parentCategory.ID,
		Images:      []models.ProductImage{},
		IsActive:    false, // inactive until images are added
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := collection.InsertOne(ctx, product)
	if err != nil {
		ctrl.Log.Errorw("failed to insert product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An error occurred while creating the product"})
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully. Please now add images.",
		"product": populatedView(product, parentType, parentCategory),
	})
}

// GetProduct returns one product with its taxonomy populated, the ids of
// orders containing it, its lifetime revenue, and whether it may be edited.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	pipeline := []bson.M{{"$match": bson.M{"_id": objectID}}}
	pipeline = append(pipeline, productLookup...)

	cursor, err := ctrl.DB.Collection("products").Aggregate(ctx, pipeline)
	if err != nil {
		ctrl.Log.Errorw("failed to load product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	views := []models.ProductView{}
	if err = cursor.All(ctx, &views); err != nil {
		ctrl.Log.Errorw("failed to decode product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if len(views) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
		return
	}
	product := views[0]

	orders := ctrl.DB.Collection("orders")

	idCursor, err := orders.Aggregate(ctx, pipelines.OrderIDsForProduct(product.ID))
	if err != nil {
		ctrl.Log.Errorw("failed to load order ids for product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer idCursor.Close(ctx)
	idsOfOrders := []bson.M{}
	if err = idCursor.All(ctx, &idsOfOrders); err != nil {
		ctrl.Log.Errorw("failed to decode order ids", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	revCursor, err := orders.Aggregate(ctx, pipelines.RevenueForProduct(product.ID))
	if err != nil {
		ctrl.Log.Errorw("failed to load product revenue", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer revCursor.Close(ctx)
	revenuesGenerated := []pipelines.ProductRevenueRow{}
	if err = revCursor.All(ctx, &revenuesGenerated); err != nil {
		ctrl.Log.Errorw("failed to decode product revenue", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	// Editable only while no order references the product and it has images.
	updatable := len(idsOfOrders) == 0 && len(product.Images) > 0

	c.JSON(http.StatusOK, gin.H{
		"product":           product,
		"updatable":         updatable,
		"idsOfOrders":       idsOfOrders,
		"revenuesGenerated": revenuesGenerated,
	})
}

// UpdateProduct applies a partial update. An activation that fails the
// image/type/category gate is dropped from the update and reported as a
// warning; the rest of the update still persists.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	collection := ctrl.DB.Collection("products")
	var product models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
			return
		}
		ctrl.Log.Errorw("failed to load product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	update := bson.M{"updatedAt": time.Now()}

	if req.Type != "" {
		typeID, err := primitive.ObjectIDFromHex(req.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified type does not exist"})
			return
		}
		var newType models.Type
		if err := ctrl.DB.Collection("types").FindOne(ctx, bson.M{"_id": typeID}).Decode(&newType); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified type does not exist"})
			return
		}
		if !newType.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot associate a product with an inactive type"})
			return
		}
		update["type"] = newType.ID
		product.Type = newType.ID
	}

	if req.Category != "" {
		categoryID, err := primitive.ObjectIDFromHex(req.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified category does not exist"})
			return
		}
		var newCategory models.Category
		if err := ctrl.DB.Collection("categories").FindOne(ctx, bson.M{"_id": categoryID}).Decode(&newCategory); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified category does not exist"})
			return
		}
		if !newCategory.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot associate a product with an inactive category"})
			return
		}
		if newCategory.Type != product.Type {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The selected category does not belong to the chosen type"})
			return
		}
		update["category"] = newCategory.ID
		product.Category = newCategory.ID
	}

	if req.Name != "" {
		update["name"] = req.Name
		update["slug"] = utils.Slugify(req.Name)
	}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Stock != nil {
		update["stock"] = *req.Stock
	}

	var warning interface{}
	if req.IsActive != nil {
		if *req.IsActive {
			var parentType models.Type
			var parentCategory models.Category
			if err := ctrl.DB.Collection("types").FindOne(ctx, bson.M{"_id": product.Type}).Decode(&parentType); err != nil {
				ctrl.Log.Errorw("failed to load parent type", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
			if err := ctrl.DB.Collection("categories").FindOne(ctx, bson.M{"_id": product.Category}).Decode(&parentCategory); err != nil {
				ctrl.Log.Errorw("failed to load parent category", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}

			gate := taxonomy.ActivationGate{
				ImageCount:     len(product.Images),
				TypeName:       parentType.Name,
				TypeActive:     parentType.IsActive,
				CategoryName:   parentCategory.Name,
				CategoryActive: parentCategory.IsActive,
			}
			if ok, msg := gate.Check(); ok {
				update["isActive"] = true
			} else {
				// Partial success: the activation flag is dropped, the rest
				// of the update goes through.
				warning = msg
			}
		} else {
			update["isActive"] = false
		}
	}

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": update}); err != nil {
		ctrl.Log.Errorw("failed to update product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An error occurred while updating the product"})
		return
	}

	pipeline := []bson.M{{"$match": bson.M{"_id": product.ID}}}
	pipeline = append(pipeline, productLookup...)
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		ctrl.Log.Errorw("failed to reload product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer cursor.Close(ctx)
	views := []models.ProductView{}
	if err = cursor.All(ctx, &views); err != nil || len(views) == 0 {
		ctrl.Log.Errorw("failed to decode reloaded product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": views[0], "warning": warning})
}

// DeleteProduct removes an inactive, uncarted product and destroys its CDN
// images best-effort.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	collection := ctrl.DB.Collection("products")
	var product models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
			return
		}
		ctrl.Log.Errorw("failed to load product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	cartCount, err := ctrl.DB.Collection("carts").CountDocuments(ctx, bson.M{"product": product.ID})
	if err != nil {
		ctrl.Log.Errorw("failed to count carts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := taxonomy.CheckProductDeletion(product.IsActive, cartCount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// CDN cleanup is best-effort; a failed destroy never blocks the delete.
	if ctrl.Cld != nil {
		for _, image := range product.Images {
			_, err := ctrl.Cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: image.PublicID})
			if err != nil {
				ctrl.Log.Warnw("failed to delete image from CDN", "public_id", image.PublicID, "error", err)
			}
		}
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": product.ID}); err != nil {
		ctrl.Log.Errorw("failed to delete product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully."})
}

// UploadProductImages uploads base64 images to the CDN and appends the
// resulting references to the product.
func (ctrl *Controller) UploadProductImages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	var req models.UploadImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(req.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "At least one image is required"})
		return
	}
	if ctrl.Cld == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Image service not configured"})
		return
	}

	collection := ctrl.DB.Collection("products")
	var product models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
			return
		}
		ctrl.Log.Errorw("failed to load product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	uploaded := []models.ProductImage{}
	for _, data := range req.Images {
		result, err := ctrl.Cld.Upload.Upload(ctx, data, uploader.UploadParams{Folder: uploadFolder})
		if err != nil {
			ctrl.Log.Errorw("cloudinary upload error", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to upload image"})
			return
		}
		uploaded = append(uploaded, models.ProductImage{PublicID: result.PublicID, URL: result.SecureURL})
	}

	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": uploaded}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": product.ID}, update); err != nil {
		ctrl.Log.Errorw("failed to attach images", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to attach images"})
		return
	}

	product.Images = append(product.Images, uploaded...)
	c.JSON(http.StatusOK, gin.H{"success": true, "images": product.Images})
}

// resolveTaxonomy loads and validates the type/category pair for product
// creation, writing the error response itself when validation fails.
func (ctrl *Controller) resolveTaxonomy(ctx context.Context, c *gin.Context, typeHex, categoryHex string) (models.Type, models.Category, bool) {
	var parentType models.Type
	var parentCategory models.Category

	typeID, err := primitive.ObjectIDFromHex(typeHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified type does not exist"})
		return parentType, parentCategory, false
	}
	if err := ctrl.DB.Collection("types").FindOne(ctx, bson.M{"_id": typeID}).Decode(&parentType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified type does not exist"})
		return parentType, parentCategory, false
	}
	if !parentType.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot create a product with an inactive type"})
		return parentType, parentCategory, false
	}

	categoryID, err := primitive.ObjectIDFromHex(categoryHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified category does not exist"})
		return parentType, parentCategory, false
	}
	if err := ctrl.DB.Collection("categories").FindOne(ctx, bson.M{"_id": categoryID}).Decode(&parentCategory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The specified category does not exist"})
		return parentType, parentCategory, false
	}
	if !parentCategory.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot create a product with an inactive category"})
		return parentType, parentCategory, false
	}
	if parentCategory.Type != parentType.ID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "The selected category does not belong to the chosen type"})
		return parentType, parentCategory, false
	}

	return parentType, parentCategory, true
}

// populatedView embeds already-loaded taxonomy docs into a product view.
func populatedView(product models.Product, parentType models.Type, parentCategory models.Category) models.ProductView {
	return models.ProductView{
		ID:          product.ID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Type: models.TypeSummary{
			ID:       parentType.ID,
			Name:     parentType.Name,
			Slug:     parentType.Slug,
			IsActive: parentType.IsActive,
		},
		Category: models.CategorySummary{
			ID:       parentCategory.ID,
			Name:     parentCategory.Name,
			Slug:     parentCategory.Slug,
			IsActive: parentCategory.IsActive,
		},
		Images:    product.Images,
		IsActive:  product.IsActive,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
