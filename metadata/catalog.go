package metadata

import (
	"fmt"

	"github.com/finacore/tradeflow/model"
)

// StageCatalogEntry is one predefined stage a template can be built from.
type StageCatalogEntry struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	ActorType model.ActorType `json:"actorType"`
	StageType model.StageType `json:"stageType"`
}

// ProductEvent is one valid (product, event) pair of the product/event
// catalog. Templates may only be created for pairs present here.
type ProductEvent struct {
	ProductCode string `json:"productCode"`
	ProductName string `json:"productName"`
	EventCode   string `json:"eventCode"`
	EventName   string `json:"eventName"`
}

var stageCatalog = []StageCatalogEntry{
	{Key: "data-preparation", Name: "Data Preparation", ActorType: model.ACTOR_TYPE_MAKER, StageType: model.STAGE_TYPE_PREINPUT},
	{Key: "transaction-input", Name: "Transaction Input", ActorType: model.ACTOR_TYPE_MAKER, StageType: model.STAGE_TYPE_INPUT},
	{Key: "compliance-screening", Name: "Compliance Screening", ActorType: model.ACTOR_TYPE_SYSTEM, StageType: model.STAGE_TYPE_COMPLIANCE},
	{Key: "limit-check", Name: "Limit Check", ActorType: model.ACTOR_TYPE_SYSTEM, StageType: model.STAGE_TYPE_LIMIT_CHECK},
	{Key: "checker-review", Name: "Checker Review", ActorType: model.ACTOR_TYPE_CHECKER, StageType: model.STAGE_TYPE_AUTHORIZATION},
	{Key: "final-authorization", Name: "Final Authorization", ActorType: model.ACTOR_TYPE_AUTHORIZATION, StageType: model.STAGE_TYPE_AUTHORIZATION},
	{Key: "exception-review", Name: "Exception Review", ActorType: model.ACTOR_TYPE_EXCEPTION_HANDLER, StageType: model.STAGE_TYPE_AUTHORIZATION},
	{Key: "system-release", Name: "System Release", ActorType: model.ACTOR_TYPE_SYSTEM, StageType: model.STAGE_TYPE_SYSTEM},
}

var productEventCatalog = []ProductEvent{
	{ProductCode: "ILC", ProductName: "Import Letter of Credit", EventCode: "ISS", EventName: "Issuance"},
	{ProductCode: "ILC", ProductName: "Import Letter of Credit", EventCode: "AMD", EventName: "Amendment"},
	{ProductCode: "ELC", ProductName: "Export Letter of Credit", EventCode: "ADV", EventName: "Advising"},
	{ProductCode: "ELC", ProductName: "Export Letter of Credit", EventCode: "NEG", EventName: "Negotiation"},
	{ProductCode: "OBG", ProductName: "Outward Bank Guarantee", EventCode: "ISS", EventName: "Issuance"},
	{ProductCode: "OBG", ProductName: "Outward Bank Guarantee", EventCode: "CLM", EventName: "Claim Lodgement"},
	{ProductCode: "IDC", ProductName: "Import Documentary Collection", EventCode: "LOD", EventName: "Lodgement"},
	{ProductCode: "ODC", ProductName: "Outward Documentary Collection", EventCode: "LOD", EventName: "Lodgement"},
	{ProductCode: "SCF", ProductName: "Supply Chain Finance", EventCode: "DSB", EventName: "Disbursement"},
	{ProductCode: "SCF", ProductName: "Supply Chain Finance", EventCode: "STL", EventName: "Settlement"},
}

var triggerTypes = []string{"Manual", "Incoming Swift", "Portal Request", "Scheduled"}

var paneIdentifiers = []string{
	"main", "parties", "amount-details", "shipment-details",
	"documents", "charges", "settlement", "swift-preview",
}

// sampleFields is the fixed vocabulary offered by the condition editor when
// the field repository is not consulted.
var sampleFields = []string{
	"lc_amount", "currency", "tenor_days", "applicant_country",
	"beneficiary_country", "product_code", "is_confirmed", "expiry_date",
}

func StageCatalog() []StageCatalogEntry {
	return stageCatalog
}

func GetStageCatalogEntry(key string) (*StageCatalogEntry, error) {
	for _, entry := range stageCatalog {
		if entry.Key == key {
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("stage %s not present in stage catalog", key)
}

func ProductEvents() []ProductEvent {
	return productEventCatalog
}

// ValidateProductEvent checks the (product, event) pair against the catalog.
func ValidateProductEvent(productCode string, eventCode string) error {
	for _, pe := range productEventCatalog {
		if pe.ProductCode == productCode && pe.EventCode == eventCode {
			return nil
		}
	}
	return fmt.Errorf("product %s event %s not present in product/event catalog", productCode, eventCode)
}

func TriggerTypes() []string {
	return triggerTypes
}

func PaneIdentifiers() []string {
	return paneIdentifiers
}

func SampleFields() []string {
	return sampleFields
}

// Operators lists the condition operator vocabulary in display order.
func Operators() []model.ConditionOperator {
	return []model.ConditionOperator{
		model.OPERATOR_EQUALS, model.OPERATOR_NOT_EQUALS,
		model.OPERATOR_GREATER_THAN, model.OPERATOR_LESS_THAN,
		model.OPERATOR_GREATER_THAN_OR_EQUAL, model.OPERATOR_LESS_THAN_OR_EQUAL,
		model.OPERATOR_IN_LIST, model.OPERATOR_NOT_IN_LIST,
		model.OPERATOR_CONTAINS, model.OPERATOR_STARTS_WITH, model.OPERATOR_ENDS_WITH,
		model.OPERATOR_IS_EMPTY, model.OPERATOR_IS_NOT_EMPTY,
		model.OPERATOR_EXPRESSION,
	}
}
