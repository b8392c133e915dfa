package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product represents an item in the catalogue. Products are read-only from
// the order workflow's perspective; order creation never mutates them.
type Product struct {
	ID          primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Title       string                 `json:"title" bson:"title"`
	Slug        string                 `json:"slug" bson:"slug"`
	Description string                 `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64                `json:"price" bson:"price"`
	Category    string                 `json:"category" bson:"category"`
	Image       string                 `json:"image,omitempty" bson:"image,omitempty"`
	Gallery     []string               `json:"gallery,omitempty" bson:"gallery,omitempty"`
	InStock     bool                   `json:"in_stock" bson:"in_stock"`
	Featured    bool                   `json:"featured" bson:"featured"`
	Specs       map[string]interface{} `json:"specs,omitempty" bson:"specs,omitempty"`
}
