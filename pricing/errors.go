package pricing

import "fmt"

// CodePriceResolution 错误码
const CodePriceResolution = "PRICE_RESOLUTION_FAILED"

// PriceResolutionError 外部价格服务未能给出某个实体的价格
type PriceResolutionError struct {
	EntityID string
	Cause    error
}

func (e *PriceResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve price for %s: %v", e.EntityID, e.Cause)
}

func (e *PriceResolutionError) Unwrap() error { return e.Cause }

func (e *PriceResolutionError) Code() string { return CodePriceResolution }
