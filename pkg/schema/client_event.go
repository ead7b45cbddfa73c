package schema

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "eshop",
	"name": "client_event",
	"fields" : [
		{"name": "username", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "product_name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "event", "type": "string"},
		{"name": "quantity", "type": "long"}
	]
}`

type ClientEventV1 struct {
	Username    string  `avro:"username"`
	ProductID   string  `avro:"product_id"`
	ProductName string  `avro:"product_name"`
	Category    string  `avro:"category"`
	Price       float64 `avro:"price"`
	Event       string  `avro:"event"`
	Quantity    int     `avro:"quantity"`
}
