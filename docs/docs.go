// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/storefront/main.go -o docs` after
// changing handler annotations.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/cart": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CartMutationResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Empty the cart",
                "tags": [
                    "cart"
                ]
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/cart.View"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Get the cart with resolved products and totals",
                "tags": [
                    "cart"
                ]
            }
        },
        "/cart/badge": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/cart.Badge"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Get the cart badge",
                "tags": [
                    "cart"
                ]
            }
        },
        "/cart/items": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Product to add",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.AddCartItemRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CartMutationResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Add a product or increment its quantity",
                "tags": [
                    "cart"
                ]
            }
        },
        "/cart/items/{productId}": {
            "delete": {
                "parameters": [
                    {
                        "description": "Product ID",
                        "in": "path",
                        "name": "productId",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CartMutationResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Remove a product from the cart",
                "tags": [
                    "cart"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "description": "Quantities below one and unknown products leave the cart unchanged",
                "parameters": [
                    {
                        "description": "Product ID",
                        "in": "path",
                        "name": "productId",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "New quantity",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateCartItemRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CartMutationResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Set the quantity of a cart entry",
                "tags": [
                    "cart"
                ]
            }
        },
        "/cart/stream": {
            "get": {
                "description": "Sends a \"connected\" event with the badge, then a \"cart\" event for every change of the session cart",
                "produces": [
                    "text/event-stream"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Subscribe to cart changes via SSE",
                "tags": [
                    "cart"
                ]
            }
        },
        "/checkout": {
            "get": {
                "description": "Returns the submission state, the retained form, the order summary and the provinces",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CheckoutResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Open the checkout page",
                "tags": [
                    "checkout"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Shipping details",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CheckoutRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CheckoutResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Place the order",
                "tags": [
                    "checkout"
                ]
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/handler.HealthResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/handler.HealthResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Health check",
                "tags": [
                    "system"
                ]
            }
        },
        "/orders": {
            "get": {
                "description": "Uses the phone saved at checkout unless a phone query parameter is given.\nMissing phone, no orders and fetch failures are reported as a condition, not an error.",
                "parameters": [
                    {
                        "description": "Phone number",
                        "in": "query",
                        "name": "phone",
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/orders.Result"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Load the order history",
                "tags": [
                    "orders"
                ]
            }
        },
        "/orders/selection": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Order to select",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SelectOrderRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/orders.Result"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Select one of the loaded orders",
                "tags": [
                    "orders"
                ]
            }
        },
        "/products": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/catalog.Product"
                                            },
                                            "type": "array"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "List products",
                "tags": [
                    "products"
                ]
            }
        },
        "/products/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Product ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/catalog.Product"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "summary": "Get product detail",
                "tags": [
                    "products"
                ]
            }
        }
    },
    "definitions": {
        "cart.Badge": {
            "properties": {
                "count": {
                    "type": "integer"
                },
                "label": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "cart.Line": {
            "properties": {
                "lineTotal": {
                    "$ref": "#/definitions/valueobject.Money"
                },
                "product": {
                    "$ref": "#/definitions/catalog.Product"
                },
                "quantity": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "cart.View": {
            "properties": {
                "itemCount": {
                    "type": "integer"
                },
                "lines": {
                    "items": {
                        "$ref": "#/definitions/cart.Line"
                    },
                    "type": "array"
                },
                "missing": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                },
                "shipping": {
                    "$ref": "#/definitions/valueobject.Money"
                },
                "subtotal": {
                    "$ref": "#/definitions/valueobject.Money"
                },
                "total": {
                    "$ref": "#/definitions/valueobject.Money"
                }
            },
            "type": "object"
        },
        "catalog.Product": {
            "properties": {
                "brand": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "images": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                },
                "name": {
                    "type": "string"
                },
                "price": {
                    "example": "12.50",
                    "type": "string"
                },
                "rating": {
                    "type": "number"
                }
            },
            "type": "object"
        },
        "checkout.Confirmation": {
            "properties": {
                "label": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "order": {
                    "$ref": "#/definitions/order.Order"
                }
            },
            "type": "object"
        },
        "checkout.State": {
            "enum": [
                "editing",
                "submitting",
                "succeeded",
                "failed"
            ],
            "type": "string",
            "x-enum-varnames": [
                "StateEditing",
                "StateSubmitting",
                "StateSucceeded",
                "StateFailed"
            ]
        },
        "dto.AddCartItemRequest": {
            "properties": {
                "productId": {
                    "maxLength": 64,
                    "type": "string"
                },
                "quantity": {
                    "maximum": 999,
                    "minimum": 1,
                    "type": "integer"
                }
            },
            "required": [
                "productId"
            ],
            "type": "object"
        },
        "dto.CartMutationResponse": {
            "properties": {
                "badge": {
                    "$ref": "#/definitions/cart.Badge"
                },
                "changed": {
                    "type": "boolean"
                }
            },
            "type": "object"
        },
        "dto.CheckoutRequest": {
            "properties": {
                "address": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "province": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dto.CheckoutResponse": {
            "properties": {
                "confirmation": {
                    "$ref": "#/definitions/checkout.Confirmation"
                },
                "form": {
                    "$ref": "#/definitions/order.ShippingAddress"
                },
                "message": {
                    "type": "string"
                },
                "provinces": {
                    "items": {
                        "$ref": "#/definitions/order.Province"
                    },
                    "type": "array"
                },
                "state": {
                    "$ref": "#/definitions/checkout.State"
                },
                "summary": {
                    "$ref": "#/definitions/cart.View"
                }
            },
            "type": "object"
        },
        "dto.ErrorInfo": {
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "items": {
                        "$ref": "#/definitions/dto.ValidationDetail"
                    },
                    "type": "array"
                },
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dto.Response": {
            "properties": {
                "data": {},
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            },
            "type": "object"
        },
        "dto.SelectOrderRequest": {
            "properties": {
                "orderId": {
                    "type": "string"
                }
            },
            "required": [
                "orderId"
            ],
            "type": "object"
        },
        "dto.UpdateCartItemRequest": {
            "properties": {
                "quantity": {
                    "type": "integer"
                }
            },
            "required": [
                "quantity"
            ],
            "type": "object"
        },
        "dto.ValidationDetail": {
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "handler.HealthResponse": {
            "properties": {
                "checks": {
                    "additionalProperties": {
                        "type": "string"
                    },
                    "type": "object"
                },
                "go_version": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "uptime": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "order.Item": {
            "properties": {
                "amount": {
                    "example": "12.50",
                    "type": "string"
                },
                "product": {
                    "$ref": "#/definitions/catalog.Product"
                },
                "productId": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "order.Order": {
            "properties": {
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "items": {
                    "items": {
                        "$ref": "#/definitions/order.Item"
                    },
                    "type": "array"
                },
                "shippingAddress": {
                    "items": {
                        "$ref": "#/definitions/order.ShippingAddress"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "order.Province": {
            "properties": {
                "name": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "order.ShippingAddress": {
            "properties": {
                "address": {
                    "maxLength": 500,
                    "type": "string"
                },
                "name": {
                    "maxLength": 100,
                    "type": "string"
                },
                "note": {
                    "maxLength": 1000,
                    "type": "string"
                },
                "phone": {
                    "maxLength": 20,
                    "minLength": 6,
                    "type": "string"
                },
                "province": {
                    "type": "string"
                }
            },
            "required": [
                "address",
                "name",
                "phone",
                "province"
            ],
            "type": "object"
        },
        "orders.Condition": {
            "enum": [
                "loaded",
                "no_phone",
                "no_orders",
                "failed"
            ],
            "type": "string",
            "x-enum-varnames": [
                "ConditionLoaded",
                "ConditionNoPhone",
                "ConditionNoOrders",
                "ConditionFailed"
            ]
        },
        "orders.Result": {
            "properties": {
                "condition": {
                    "$ref": "#/definitions/orders.Condition"
                },
                "message": {
                    "type": "string"
                },
                "orders": {
                    "items": {
                        "$ref": "#/definitions/order.Order"
                    },
                    "type": "array"
                },
                "phone": {
                    "type": "string"
                },
                "selected": {
                    "$ref": "#/definitions/order.Order"
                }
            },
            "type": "object"
        },
        "valueobject.Money": {
            "properties": {
                "amount": {
                    "example": "25.00",
                    "type": "string"
                },
                "currency": {
                    "example": "USD",
                    "type": "string"
                }
            },
            "type": "object"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "LocalBrand Storefront API",
	Description:      "Cart, checkout and order lookup for the LocalBrand shop",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
