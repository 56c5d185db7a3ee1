package domain

// UnknownTenant is assigned to records whose tenant name is empty or
// whitespace.
const UnknownTenant = "Unknown"

// RequiredTenants are the entities that appear in every report, in
// their fixed display order, even with zero recorded shipments.
var RequiredTenants = []string{
	"Yusen Logistics Benelux B.V.",
	"Yusen Logistics Czech s.r.o.",
	"Yusen Logistics France S.A.S.",
	"Yusen Logistics Poland Sp. z.o.o.",
	"Yusen Logistics Slovakia",
	"Yusen Logistics Germany",
	"Yusen Logistics Hungary",
}
