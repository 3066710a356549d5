package service

import "github.com/shikinora2/VietQR-HDSAISON-sub000/dto"

// contractPagePlans maps a contract type to the 0-based pages copied
// from the original into the contract sub-document. Indices beyond the
// source page count are dropped during assembly, never clamped.
var contractPagePlans = map[dto.ContractType][]int{
	dto.ContractTypeDL:      {0, 1, 2, 3, 4},
	dto.ContractTypeDefault: {0, 1, 2, 3},
}

// printItem is one page contribution to a print bundle.
type printItem struct {
	Doc  dto.FileKey
	Page int // 0-based index within the sub-document
}

// printPlans fixes the page order of the front/back print bundles.
// A missing sub-document simply contributes nothing.
var printPlans = map[dto.PrintType][]printItem{
	dto.PrintFront: {
		{Doc: dto.FilePdk, Page: 0},
		{Doc: dto.FilePayment, Page: 0},
		{Doc: dto.FileContract, Page: 0},
		{Doc: dto.FileContract, Page: 2},
		{Doc: dto.FileInsurance, Page: 0},
	},
	dto.PrintBack: {
		{Doc: dto.FileInsurance, Page: 1},
		{Doc: dto.FileContract, Page: 3},
		{Doc: dto.FileContract, Page: 1},
	},
}

// contractPagePlan returns the page plan for a contract type,
// defaulting to the non-DL ranges.
func contractPagePlan(ct dto.ContractType) []int {
	if plan, ok := contractPagePlans[ct]; ok {
		return plan
	}
	return contractPagePlans[dto.ContractTypeDefault]
}

// filterPageIndices drops indices outside [0, pageCount).
func filterPageIndices(indices []int, pageCount int) []int {
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < pageCount {
			out = append(out, idx)
		}
	}
	return out
}
