package shopify

var addressTypes = []string{
	"Billing", "Shipping", "Office", "Personal", "Plant",
	"Postal", "Shop", "Subsidiary", "Warehouse", "Other",
}

// AddressType maps a customer address position to the ERP address type name.
func AddressType(index int) (string, bool) {
	if index < 0 || index >= len(addressTypes) {
		return "", false
	}
	return addressTypes[index], true
}

// LabelAddresses sets "address_type" on each entry of the customer's addresses,
// in the order the platform returned them. Entries past the known types are left alone.
func LabelAddresses(customer Object) {
	addresses, _ := customer["addresses"].([]any)
	for i, a := range addresses {
		addr, ok := a.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := AddressType(i); ok {
			addr["address_type"] = t
		}
	}
}
