package backend

import (
	"math"
	"time"

	"github.com/and161185/gas2door/internal/model"
	"github.com/tidwall/gjson"
)

// The backend answers with the same field under different names depending on
// the endpoint and its version. Everything is mapped to one canonical shape here.

var idPaths = []string{"id", "_id", "data.id", "data._id", "order.id", "order._id", "data.order.id"}
var tokenPaths = []string{"accessToken", "token", "data.accessToken", "data.token", "jwt"}

func firstString(res gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := res.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func firstAmount(res gjson.Result, paths ...string) int64 {
	for _, p := range paths {
		if v := amount(res.Get(p)); v != 0 {
			return v
		}
	}
	return 0
}

// amount reads kobo from numbers or numeric strings; anything else is zero.
func amount(v gjson.Result) int64 {
	if !v.Exists() {
		return 0
	}
	f := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Round(f))
}

func extractID(res gjson.Result) string {
	return firstString(res, idPaths...)
}

func extractToken(res gjson.Result) string {
	return firstString(res, tokenPaths...)
}

// extractArray unwraps the list envelopes the backend uses for pagination.
func extractArray(res gjson.Result) []gjson.Result {
	if res.IsArray() {
		return res.Array()
	}
	for _, p := range []string{"docs", "orders", "data", "data.docs", "data.orders"} {
		if v := res.Get(p); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

func unwrap(res gjson.Result, envelopes ...string) gjson.Result {
	for _, e := range envelopes {
		if v := res.Get(e); v.IsObject() {
			return v
		}
	}
	return res
}

func parseUser(res gjson.Result) *model.User {
	u := res.Get("user")
	if !u.IsObject() {
		u = res.Get("data.user")
	}
	if !u.IsObject() {
		return nil
	}

	return &model.User{
		ID:      firstString(u, "id", "_id"),
		Name:    firstString(u, "name", "fullName"),
		Email:   u.Get("email").String(),
		Phone:   firstString(u, "phone", "phoneNumber"),
		IsGuest: u.Get("isGuest").Bool(),
	}
}

func parseOrder(res gjson.Result) model.Order {
	o := unwrap(res, "order", "data.order", "data")

	order := model.Order{
		ID:             firstString(o, "id", "_id"),
		Status:         o.Get("status").String(),
		PaymentStatus:  o.Get("paymentStatus").String(),
		PaymentMethod:  o.Get("paymentMethod").String(),
		ItemsTotal:     firstAmount(o, "itemsTotal", "itemsSubtotal", "subTotal"),
		DeliveryFee:    firstAmount(o, "deliveryFee"),
		ServiceCharge:  firstAmount(o, "serviceCharge", "serviceFee", "serviceFeeAmount"),
		VAT:            firstAmount(o, "vat", "vatAmount", "tax"),
		GrandTotal:     firstAmount(o, "grandTotal", "totalAmount", "finalAmountPaid"),
		RecipientName:  o.Get("recipientName").String(),
		RecipientPhone: o.Get("recipientPhone").String(),
		IsExpress:      o.Get("isExpress").Bool(),
	}

	for _, it := range o.Get("items").Array() {
		order.Items = append(order.Items, model.OrderItem{
			CylinderID:  firstString(it, "cylinderId", "cylinder.id", "cylinder"),
			ProductName: firstString(it, "productName", "name"),
			Quantity:    int(it.Get("quantity").Int()),
			UnitPrice:   firstAmount(it, "unitPrice", "price"),
		})
	}

	if a := o.Get("deliveryAddress"); a.IsObject() {
		order.DeliveryAddress = &model.Address{
			ID:          firstString(a, "id", "_id"),
			FullAddress: firstString(a, "fullAddress", "address"),
			Street:      a.Get("street").String(),
			City:        a.Get("city").String(),
			State:       a.Get("state").String(),
			Landmark:    a.Get("landmark").String(),
			Latitude:    a.Get("latitude").Float(),
			Longitude:   a.Get("longitude").Float(),
		}
	}

	if ts := firstString(o, "createdAt", "created_at"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			order.CreatedAt = t
		}
	}

	return order
}

// parsePlace maps a raw geocoder result onto a ResolvedPlace, falling back to
// the home region for anything the geocoder left out.
func parsePlace(res gjson.Result, region model.Region) model.ResolvedPlace {
	r := unwrap(res, "result")
	components := r.Get("address_components").Array()

	component := func(kind string) string {
		for _, c := range components {
			for _, t := range c.Get("types").Array() {
				if t.String() == kind {
					return c.Get("long_name").String()
				}
			}
		}
		return ""
	}

	street := component("route")
	if number := component("street_number"); number != "" {
		street = number + " " + street
	}
	if street == "" {
		street = r.Get("name").String()
	}

	city := component("locality")
	if city == "" {
		city = component("administrative_area_level_2")
	}

	place := model.ResolvedPlace{
		FullAddress: r.Get("formatted_address").String(),
		Street:      street,
		City:        city,
		State:       component("administrative_area_level_1"),
		Country:     component("country"),
		Latitude:    r.Get("geometry.location.lat").Float(),
		Longitude:   r.Get("geometry.location.lng").Float(),
	}

	if place.City == "" {
		place.City = region.City
	}
	if place.State == "" {
		place.State = region.State
	}
	if place.Country == "" {
		place.Country = region.Country
	}
	return place
}
