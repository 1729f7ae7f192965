package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightdesk/contracts-service/internal/config"
	"github.com/freightdesk/contracts-service/internal/excel"
	"github.com/freightdesk/contracts-service/internal/model"
	"github.com/freightdesk/contracts-service/internal/pdf"
	"github.com/freightdesk/contracts-service/internal/render"
	"github.com/freightdesk/contracts-service/internal/repository"
	"github.com/freightdesk/contracts-service/internal/schema"
	"github.com/freightdesk/contracts-service/internal/storage"
)

// Defaults applied when the payload leaves a field unset.
const (
	defaultTerminationNoticeDays = 30
	defaultTaxesGSTPct           = 18.0
	defaultMinChargeableWeightKg = 20.0
)

type ContractService struct {
	contracts *repository.ContractRepository
	clients   *repository.ClientRepository
	renderer  *render.Renderer
	pdfGen    *pdf.Generator
	excelGen  *excel.Generator
	store     storage.Store
	cfg       *config.Config
}

func NewContractService(
	contracts *repository.ContractRepository,
	clients *repository.ClientRepository,
	renderer *render.Renderer,
	pdfGen *pdf.Generator,
	excelGen *excel.Generator,
	store storage.Store,
	cfg *config.Config,
) *ContractService {
	return &ContractService{
		contracts: contracts,
		clients:   clients,
		renderer:  renderer,
		pdfGen:    pdfGen,
		excelGen:  excelGen,
		store:     store,
		cfg:       cfg,
	}
}

// contractPayload is the parent part of a raw contract submission. Dates
// arrive as strings in any of the accepted layouts.
type contractPayload struct {
	ClientID     string `json:"client_id"`
	ContractCode string `json:"contract_code"`

	AgreementDate  *string `json:"agreement_date"`
	AgreementPlace *string `json:"agreement_place"`
	TermStart      *string `json:"term_start"`
	TermEnd        *string `json:"term_end"`
	TermMonths     *int    `json:"term_months"`
	Territory      *string `json:"territory"`

	Jurisdiction            *string `json:"jurisdiction"`
	ArbitrationSeat         *string `json:"arbitration_seat"`
	ArbitrationLanguage     *string `json:"arbitration_language"`
	TerminationNoticeDays   *int    `json:"termination_notice_days"`
	NonCompeteCoolingMonths *int    `json:"non_compete_cooling_months"`

	PrepaymentRequired  *bool `json:"prepayment_required"`
	PriceFloorEnabled   *bool `json:"price_floor_enabled"`
	PriceCeilingEnabled *bool `json:"price_ceiling_enabled"`

	TaxesGSTPct *float64 `json:"taxes_gst_pct"`

	MetroCongestionPerCN *float64 `json:"metro_congestion_per_cn"`
	CNChargePerCN        *float64 `json:"cn_charge_per_cn"`
	DocketChargePerCN    *float64 `json:"docket_charge_per_cn"`

	MinChargeableWeightKg *float64 `json:"min_chargeable_weight_kg"`
	MinFreightPerCN       *float64 `json:"min_freight_per_cn"`

	FuelBasePct     *float64 `json:"fuel_base_pct"`
	DieselBasePrice *float64 `json:"diesel_base_price"`
	FuelSlopePct    *float64 `json:"fuel_slope_pct"`

	ChargingMechanism *string `json:"charging_mechanism"`
	RoundingRule      *string `json:"rounding_rule"`

	OddSizeLengthFt *float64 `json:"odd_size_length_ft"`
	OddSizeWidthFt  *float64 `json:"odd_size_width_ft"`
	OddSizeHeightFt *float64 `json:"odd_size_height_ft"`

	Notes *string `json:"notes"`
}

// CreateContract validates and persists a full contract aggregate from a raw
// payload. Field and section aliases are canonicalized here, at the boundary;
// everything downstream sees canonical names only.
func (s *ContractService) CreateContract(ctx context.Context, principal model.Principal, body map[string]json.RawMessage) (uuid.UUID, error) {
	if !(principal.IsAdmin() || principal.IsOps()) {
		return uuid.Nil, ErrPermissionDenied
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var payload contractPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(payload.ClientID) == "" || strings.TrimSpace(payload.ContractCode) == "" {
		return uuid.Nil, fmt.Errorf("%w: client_id and contract_code are required", ErrInvalidInput)
	}
	clientID, err := uuid.Parse(strings.TrimSpace(payload.ClientID))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid client_id", ErrInvalidInput)
	}

	if _, err := s.clients.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("%w: unknown client_id", ErrInvalidInput)
		}
		return uuid.Nil, err
	}

	contract, err := buildContract(clientID, payload)
	if err != nil {
		return uuid.Nil, err
	}

	rawSections, err := schema.ExtractSections(body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	sections, err := decodeSections(rawSections)
	if err != nil {
		return uuid.Nil, err
	}
	if err := validateSections(sections); err != nil {
		return uuid.Nil, err
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeouts.Write)
	defer cancel()

	id, err := s.contracts.CreateContract(writeCtx, contract, sections)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return uuid.Nil, fmt.Errorf("%w: %s", ErrConflict, contract.ContractCode)
		case errors.Is(err, context.DeadlineExceeded):
			return uuid.Nil, fmt.Errorf("%w: contract write", ErrUpstreamTimeout)
		default:
			return uuid.Nil, err
		}
	}
	return id, nil
}

func buildContract(clientID uuid.UUID, payload contractPayload) (model.Contract, error) {
	contract := model.Contract{
		ClientID:     clientID,
		ContractCode: strings.TrimSpace(payload.ContractCode),

		AgreementPlace:          payload.AgreementPlace,
		TermMonths:              payload.TermMonths,
		Territory:               payload.Territory,
		Jurisdiction:            payload.Jurisdiction,
		ArbitrationSeat:         payload.ArbitrationSeat,
		ArbitrationLanguage:     payload.ArbitrationLanguage,
		TerminationNoticeDays:   defaultTerminationNoticeDays,
		NonCompeteCoolingMonths: payload.NonCompeteCoolingMonths,
		TaxesGSTPct:             defaultTaxesGSTPct,
		MetroCongestionPerCN:    payload.MetroCongestionPerCN,
		CNChargePerCN:           payload.CNChargePerCN,
		DocketChargePerCN:       payload.DocketChargePerCN,
		MinChargeableWeightKg:   defaultMinChargeableWeightKg,
		MinFreightPerCN:         payload.MinFreightPerCN,
		FuelBasePct:             payload.FuelBasePct,
		DieselBasePrice:         payload.DieselBasePrice,
		FuelSlopePct:            payload.FuelSlopePct,
		ChargingMechanism:       payload.ChargingMechanism,
		RoundingRule:            payload.RoundingRule,
		OddSizeLengthFt:         payload.OddSizeLengthFt,
		OddSizeWidthFt:          payload.OddSizeWidthFt,
		OddSizeHeightFt:         payload.OddSizeHeightFt,
		Notes:                   payload.Notes,
	}

	if payload.TerminationNoticeDays != nil {
		contract.TerminationNoticeDays = *payload.TerminationNoticeDays
	}
	if payload.TaxesGSTPct != nil {
		contract.TaxesGSTPct = *payload.TaxesGSTPct
	}
	if payload.MinChargeableWeightKg != nil {
		contract.MinChargeableWeightKg = *payload.MinChargeableWeightKg
	}
	if payload.PrepaymentRequired != nil {
		contract.PrepaymentRequired = *payload.PrepaymentRequired
	}
	if payload.PriceFloorEnabled != nil {
		contract.PriceFloorEnabled = *payload.PriceFloorEnabled
	}
	if payload.PriceCeilingEnabled != nil {
		contract.PriceCeilingEnabled = *payload.PriceCeilingEnabled
	}

	var err error
	if contract.AgreementDate, err = parseDatePtr(payload.AgreementDate, "agreement_date"); err != nil {
		return model.Contract{}, err
	}
	if contract.TermStart, err = parseDatePtr(payload.TermStart, "term_start"); err != nil {
		return model.Contract{}, err
	}
	if contract.TermEnd, err = parseDatePtr(payload.TermEnd, "term_end"); err != nil {
		return model.Contract{}, err
	}
	return contract, nil
}

func decodeSections(raw map[string][]map[string]any) (model.ContractSections, error) {
	var sections model.ContractSections
	var err error

	if sections.VolumetricBases, err = schema.DecodeRows[model.VolumetricBasis](raw["volumetric_bases"]); err != nil {
		return sections, fmt.Errorf("%w: volumetric_bases: %v", ErrInvalidInput, err)
	}
	if sections.Parties, err = schema.DecodeRows[model.ContractParty](raw["parties"]); err != nil {
		return sections, fmt.Errorf("%w: parties: %v", ErrInvalidInput, err)
	}
	if sections.OdaRules, err = schema.DecodeRows[model.OdaRule](raw["oda_rules"]); err != nil {
		return sections, fmt.Errorf("%w: oda_rules: %v", ErrInvalidInput, err)
	}
	if sections.NonMetroRules, err = schema.DecodeRows[model.NonMetroRule](raw["non_metro_rules"]); err != nil {
		return sections, fmt.Errorf("%w: non_metro_rules: %v", ErrInvalidInput, err)
	}
	if sections.RegionSurcharges, err = schema.DecodeRows[model.RegionSurcharge](raw["region_surcharges"]); err != nil {
		return sections, fmt.Errorf("%w: region_surcharges: %v", ErrInvalidInput, err)
	}
	if sections.VasCharges, err = schema.DecodeRows[model.VasCharge](raw["vas_charges"]); err != nil {
		return sections, fmt.Errorf("%w: vas_charges: %v", ErrInvalidInput, err)
	}
	if sections.InsuranceRules, err = schema.DecodeRows[model.InsuranceRule](raw["insurance_rules"]); err != nil {
		return sections, fmt.Errorf("%w: insurance_rules: %v", ErrInvalidInput, err)
	}
	if sections.IncentiveSlabs, err = schema.DecodeRows[model.IncentiveSlab](raw["incentive_slabs"]); err != nil {
		return sections, fmt.Errorf("%w: incentive_slabs: %v", ErrInvalidInput, err)
	}
	if sections.Annexures, err = schema.DecodeRows[model.ContractAnnexure](raw["annexures"]); err != nil {
		return sections, fmt.Errorf("%w: annexures: %v", ErrInvalidInput, err)
	}
	if sections.MetroCities, err = schema.DecodeRows[model.MetroCity](raw["metro_cities"]); err != nil {
		return sections, fmt.Errorf("%w: metro_cities: %v", ErrInvalidInput, err)
	}
	if sections.SpecialHandlingBands, err = schema.DecodeRows[model.SpecialHandlingBand](raw["special_handling_bands"]); err != nil {
		return sections, fmt.Errorf("%w: special_handling_bands: %v", ErrInvalidInput, err)
	}
	if sections.PickupCharges, err = schema.DecodeRows[model.PickupCharge](raw["pickup_charges"]); err != nil {
		return sections, fmt.Errorf("%w: pickup_charges: %v", ErrInvalidInput, err)
	}
	if sections.ZoneRates, err = schema.DecodeRows[model.ZoneRate](raw["zone_rates"]); err != nil {
		return sections, fmt.Errorf("%w: zone_rates: %v", ErrInvalidInput, err)
	}
	return sections, nil
}

func validateSections(sections model.ContractSections) error {
	for _, party := range sections.Parties {
		switch party.PartyRole {
		case model.PartyRoleCompany, model.PartyRoleClient, model.PartyRoleOther:
		default:
			return fmt.Errorf("%w: party_role must be COMPANY, CLIENT or OTHER", ErrInvalidInput)
		}
		if strings.TrimSpace(party.LegalName) == "" {
			return fmt.Errorf("%w: party legal_name is required", ErrInvalidInput)
		}
	}
	for _, rule := range sections.OdaRules {
		if strings.TrimSpace(rule.OdaCode) == "" {
			return fmt.Errorf("%w: oda_code is required", ErrInvalidInput)
		}
	}
	for _, vas := range sections.VasCharges {
		switch vas.Method {
		case model.VasMethodRatePerKg, model.VasMethodRatePerCN, model.VasMethodMultiplier, model.VasMethodFlat:
		default:
			return fmt.Errorf("%w: vas method %q is not supported", ErrInvalidInput, vas.Method)
		}
	}
	// Slab overlap is intentionally not checked; only per-row bounds are.
	for _, slab := range sections.IncentiveSlabs {
		if slab.MaxTonnage != nil && *slab.MaxTonnage < slab.MinTonnage {
			return fmt.Errorf("%w: incentive slab max_tonnage below min_tonnage", ErrInvalidInput)
		}
	}
	return nil
}

// GetContract returns the full projection, tenant-scoped.
func (s *ContractService) GetContract(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.ContractView, error) {
	view, err := s.contracts.GetContract(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.CanAccessClient(view.ClientID) {
		return nil, ErrPermissionDenied
	}
	return view, nil
}

// ListContracts returns bounded newest-first summaries. Client principals are
// always scoped to their own client.
func (s *ContractService) ListContracts(ctx context.Context, principal model.Principal, clientID *uuid.UUID) ([]model.ContractSummary, error) {
	if !(principal.IsAdmin() || principal.IsOps()) {
		if principal.ClientID == nil {
			return nil, ErrPermissionDenied
		}
		clientID = principal.ClientID
	}
	return s.contracts.ListContracts(ctx, clientID)
}

// RenderDocument produces the contract's HTML document.
func (s *ContractService) RenderDocument(ctx context.Context, principal model.Principal, id uuid.UUID) (string, error) {
	view, client, err := s.viewWithClient(ctx, principal, id)
	if err != nil {
		return "", err
	}
	sections, err := render.SectionsFromView(view)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(render.Input{
		Contract:        view.Contract,
		Client:          *client,
		Sections:        sections,
		OddSizeLengthFt: s.cfg.Render.OddSizeLengthFt,
		OddSizeWidthFt:  s.cfg.Render.OddSizeWidthFt,
		OddSizeHeightFt: s.cfg.Render.OddSizeHeightFt,
	})
}

type DocumentResult struct {
	FileName    string
	ContentType string
	Content     []byte
	URL         string
}

// GeneratePDF renders the rate-card PDF, persists it via the blob store and
// returns the bytes plus the stored document's URL.
func (s *ContractService) GeneratePDF(ctx context.Context, principal model.Principal, id uuid.UUID) (*DocumentResult, error) {
	view, client, err := s.viewWithClient(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	content, err := s.pdfGen.Generate(view, *client)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("contract-%s.pdf", render.SanitizeFileName(view.ContractCode))
	key := fmt.Sprintf("contracts/%s/%s", view.ID, fileName)

	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeouts.Upstream)
	defer cancel()
	url, err := s.store.Put(storeCtx, key, content, "application/pdf")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: document store", ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return &DocumentResult{
		FileName:    fileName,
		ContentType: "application/pdf",
		Content:     content,
		URL:         url,
	}, nil
}

// ExportExcel builds the rate-card workbook for download.
func (s *ContractService) ExportExcel(ctx context.Context, principal model.Principal, id uuid.UUID) (*DocumentResult, error) {
	view, client, err := s.viewWithClient(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	content, err := s.excelGen.Generate(view, *client)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{
		FileName:    excel.FileName(view),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

func (s *ContractService) viewWithClient(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.ContractView, *model.Client, error) {
	view, err := s.GetContract(ctx, principal, id)
	if err != nil {
		return nil, nil, err
	}
	client, err := s.clients.GetClient(ctx, view.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return view, client, nil
}

func parseDatePtr(raw *string, field string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	trimmed := strings.TrimSpace(*raw)
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid %s", ErrInvalidInput, field)
}
