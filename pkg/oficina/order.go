package oficina

import "encoding/json"

// Order mirrors a service-order row of the external system. Only the
// fields this application consumes are typed; whatever else the foreign
// schema carries travels in Extra so nothing is silently dropped.
type Order struct {
	ID               string  `json:"id"`
	Number           string  `json:"numero"`
	Status           string  `json:"status"`
	ClientName       string  `json:"cliente_nome"`
	ClientCNPJ       string  `json:"cliente_cnpj"`
	VehiclePlate     string  `json:"veiculo_placa"`
	VehicleModel     string  `json:"veiculo_modelo"`
	ServiceType      string  `json:"tipo_servico"`
	Odometer         *int    `json:"km"`
	FuelLevel        string  `json:"nivel_combustivel"`
	EntryDate        string  `json:"data_entrada"`
	CompletionDate   string  `json:"data_conclusao"`
	CheckinPhotoURL  string  `json:"checkin_photo_url"`
	CheckoutPhotoURL string  `json:"checkout_photo_url"`

	Extra map[string]json.RawMessage `json:"-"`
}

var orderKnownKeys = []string{
	"id", "numero", "status", "cliente_nome", "cliente_cnpj",
	"veiculo_placa", "veiculo_modelo", "tipo_servico", "km",
	"nivel_combustivel", "data_entrada", "data_conclusao",
	"checkin_photo_url", "checkout_photo_url",
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range orderKnownKeys {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*o = Order(a)
	o.Extra = raw
	return nil
}

func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	data, err := json.Marshal(alias(o))
	if err != nil {
		return nil, err
	}
	if len(o.Extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range o.Extra {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
