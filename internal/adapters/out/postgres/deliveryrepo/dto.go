// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, converting between domain entities and database rows.
package deliveryrepo

import (
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/proof"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Addresses, package descriptor, fee breakdown, and proof of
// delivery are embedded column groups; the proof group is present when
// proof_completed_at is non-null.
type DeliveryDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;index"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;index"`
	PharmacyID     uuid.UUID  `gorm:"type:uuid"`
	PartnerID      *uuid.UUID `gorm:"type:uuid;index"`
	RouteID        *uuid.UUID `gorm:"type:uuid;index"`
	Status         int        `gorm:"index"`
	Priority       int
	Pickup         AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff        AddressDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Package        PackageDTO `gorm:"embedded;embeddedPrefix:package_"`
	PackageNotes   string
	TrackingNumber string `gorm:"uniqueIndex"`
	Fee            FeeDTO `gorm:"embedded;embeddedPrefix:fee_"`

	CurrentLat *float64
	CurrentLon *float64

	ScheduledPickupAt   *time.Time
	ScheduledDeliveryAt *time.Time
	ActualPickupAt      *time.Time
	ActualDeliveryAt    *time.Time

	Proof ProofDTO `gorm:"embedded;embeddedPrefix:proof_"`

	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// AddressDTO represents an embedded address column group.
type AddressDTO struct {
	Street       string
	City         string
	Region       string
	Country      string
	Landmark     string
	Instructions string
	Lat          float64
	Lon          float64
}

// PackageDTO represents the embedded package descriptor.
type PackageDTO struct {
	WeightKg      float64
	LengthCm      float64
	WidthCm       float64
	HeightCm      float64
	DeclaredValue float64
	Fragile       bool
	ColdChain     bool
}

// FeeDTO represents the embedded fee breakdown.
type FeeDTO struct {
	Base      float64
	Distance  float64
	Surcharge float64
}

// ProofDTO represents the embedded proof-of-delivery column group.
// CompletedAt doubles as the presence marker.
type ProofDTO struct {
	RecipientName string
	SignatureRef  string
	PhotoRef      string
	Notes         string
	Lat           float64
	Lon           float64
	CompletedAt   *time.Time
	Checksum      string
}

func addressToDTO(a delivery.Address) AddressDTO {
	return AddressDTO{
		Street:       a.Street(),
		City:         a.City(),
		Region:       a.Region(),
		Country:      a.Country(),
		Landmark:     a.Landmark(),
		Instructions: a.Instructions(),
		Lat:          a.Point().Lat(),
		Lon:          a.Point().Lon(),
	}
}

func addressFromDTO(dto AddressDTO) (delivery.Address, error) {
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return delivery.Address{}, err
	}
	return delivery.NewAddress(dto.Street, dto.City, dto.Region, dto.Country,
		dto.Landmark, dto.Instructions, point)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUIDFromDTO(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:                  d.ID().Bytes(),
		OrderID:             d.OrderID().Bytes(),
		CustomerID:          d.CustomerID().Bytes(),
		PharmacyID:          d.PharmacyID().Bytes(),
		PartnerID:           optionalUUID(d.Partner()),
		RouteID:             optionalUUID(d.Route()),
		Status:              int(d.Status()),
		Priority:            int(d.Priority()),
		Pickup:              addressToDTO(d.PickupAddress()),
		Dropoff:             addressToDTO(d.DropoffAddress()),
		PackageNotes:        d.PackageNotes(),
		TrackingNumber:      d.TrackingNumber(),
		ScheduledPickupAt:   d.ScheduledPickup(),
		ScheduledDeliveryAt: d.ScheduledDelivery(),
		ActualPickupAt:      d.ActualPickup(),
		ActualDeliveryAt:    d.ActualDelivery(),
		FailureReason:       d.FailureReason(),
		CreatedAt:           d.CreatedAt(),
		UpdatedAt:           d.UpdatedAt(),
	}

	pkg := d.PackageInfo()
	dto.Package = PackageDTO{
		WeightKg:      pkg.WeightKg(),
		LengthCm:      pkg.LengthCm(),
		WidthCm:       pkg.WidthCm(),
		HeightCm:      pkg.HeightCm(),
		DeclaredValue: pkg.DeclaredValue(),
		Fragile:       pkg.Fragile(),
		ColdChain:     pkg.ColdChain(),
	}

	fee := d.Fee()
	dto.Fee = FeeDTO{
		Base:      fee.Base(),
		Distance:  fee.Distance(),
		Surcharge: fee.Surcharge(),
	}

	if loc := d.CurrentLocation(); loc != nil {
		lat, lon := loc.Lat(), loc.Lon()
		dto.CurrentLat = &lat
		dto.CurrentLon = &lon
	}

	if pf := d.ProofOfDelivery(); pf != nil {
		completedAt := pf.CompletedAt()
		dto.Proof = ProofDTO{
			RecipientName: pf.RecipientName(),
			SignatureRef:  pf.SignatureRef(),
			PhotoRef:      pf.PhotoRef(),
			Notes:         pf.Notes(),
			Lat:           pf.Location().Lat(),
			Lon:           pf.Location().Lon(),
			CompletedAt:   &completedAt,
			Checksum:      pf.Checksum(),
		}
	}

	return dto
}

// toDomain converts a database DTO to a delivery aggregate using
// RestoreDelivery, reconstructing the embedded value objects first.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	pharmacyID, err := kernel.UUIDFromBytes(dto.PharmacyID[:])
	if err != nil {
		return nil, err
	}
	partnerID, err := optionalUUIDFromDTO(dto.PartnerID)
	if err != nil {
		return nil, err
	}
	routeID, err := optionalUUIDFromDTO(dto.RouteID)
	if err != nil {
		return nil, err
	}

	pickup, err := addressFromDTO(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := addressFromDTO(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	pkg, err := delivery.NewPackageInfo(dto.Package.WeightKg, dto.Package.LengthCm,
		dto.Package.WidthCm, dto.Package.HeightCm, dto.Package.DeclaredValue,
		dto.Package.Fragile, dto.Package.ColdChain)
	if err != nil {
		return nil, err
	}

	fee, err := delivery.RestoreFee(dto.Fee.Base, dto.Fee.Distance, dto.Fee.Surcharge)
	if err != nil {
		return nil, err
	}

	var currentLocation *kernel.GeoPoint
	if dto.CurrentLat != nil && dto.CurrentLon != nil {
		point, locErr := kernel.NewGeoPoint(*dto.CurrentLat, *dto.CurrentLon)
		if locErr != nil {
			return nil, locErr
		}
		currentLocation = &point
	}

	var proofOfDelivery *proof.Proof
	if dto.Proof.CompletedAt != nil {
		location, locErr := kernel.NewGeoPoint(dto.Proof.Lat, dto.Proof.Lon)
		if locErr != nil {
			return nil, locErr
		}
		pf, proofErr := proof.RestoreProof(dto.Proof.RecipientName, dto.Proof.SignatureRef,
			dto.Proof.PhotoRef, dto.Proof.Notes, location, *dto.Proof.CompletedAt,
			dto.Proof.Checksum)
		if proofErr != nil {
			return nil, proofErr
		}
		proofOfDelivery = &pf
	}

	return delivery.RestoreDelivery(id, orderID, customerID, pharmacyID,
		partnerID, routeID, delivery.Status(dto.Status), delivery.Priority(dto.Priority),
		pickup, dropoff, pkg, dto.PackageNotes, dto.TrackingNumber, fee,
		currentLocation, dto.ScheduledPickupAt, dto.ScheduledDeliveryAt,
		dto.ActualPickupAt, dto.ActualDeliveryAt, proofOfDelivery,
		dto.FailureReason, dto.CreatedAt, dto.UpdatedAt)
}
