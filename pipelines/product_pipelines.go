package pipelines

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"boutique-backend/models"
)

// ProductRevenueRow is the lifetime revenue a single product generated.
type ProductRevenueRow struct {
	Product      primitive.ObjectID `bson:"_id" json:"_id"`
	TotalRevenue float64            `bson:"totalRevenue" json:"totalRevenue"`
	TotalSold    int                `bson:"totalSold" json:"totalSold"`
}

// OrderIDsForProduct yields the ids of orders containing the product.
// A non-empty result blocks edits on the product detail screen.
func OrderIDsForProduct(productID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"orderItems.product": productID}},
		{"$project": bson.M{"_id": 1}},
	}
}

// RevenueForProduct sums paid revenue and quantity for one product.
func RevenueForProduct(productID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"paymentStatus": models.PaymentStatusPaid}},
		{"$unwind": "$orderItems"},
		{"$match": bson.M{"orderItems.product": productID}},
		{"$group": bson.M{
			"_id": "$orderItems.product",
			"totalRevenue": bson.M{
				"$sum": bson.M{"$multiply": []string{"$orderItems.price", "$orderItems.quantity"}},
			},
			"totalSold": bson.M{"$sum": "$orderItems.quantity"},
		}},
	}
}
