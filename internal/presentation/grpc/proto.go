package grpc

// proto.go defines the gRPC server interface derived from
// tailfire/settlement/v1/settlement.proto. This file serves as a stand-in for
// buf-generated code; once `buf generate` is run, replace it with the import
// from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SettlementServiceServer is the server API for SettlementService.
type SettlementServiceServer interface {
	GetTripFinancialSummary(context.Context, *GetTripFinancialSummaryRequest) (*GetTripFinancialSummaryResponse, error)
	GetExchangeRate(context.Context, *GetExchangeRateRequest) (*GetExchangeRateResponse, error)
	ConvertAmount(context.Context, *ConvertAmountRequest) (*ConvertAmountResponse, error)
	RefreshExchangeRates(context.Context, *RefreshExchangeRatesRequest) (*RefreshExchangeRatesResponse, error)
	mustEmbedUnimplementedSettlementServiceServer()
}

// UnimplementedSettlementServiceServer provides forward-compatible default implementations.
type UnimplementedSettlementServiceServer struct{}

func (UnimplementedSettlementServiceServer) GetTripFinancialSummary(context.Context, *GetTripFinancialSummaryRequest) (*GetTripFinancialSummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTripFinancialSummary not implemented")
}
func (UnimplementedSettlementServiceServer) GetExchangeRate(context.Context, *GetExchangeRateRequest) (*GetExchangeRateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetExchangeRate not implemented")
}
func (UnimplementedSettlementServiceServer) ConvertAmount(context.Context, *ConvertAmountRequest) (*ConvertAmountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ConvertAmount not implemented")
}
func (UnimplementedSettlementServiceServer) RefreshExchangeRates(context.Context, *RefreshExchangeRatesRequest) (*RefreshExchangeRatesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefreshExchangeRates not implemented")
}
func (UnimplementedSettlementServiceServer) mustEmbedUnimplementedSettlementServiceServer() {}

// RegisterSettlementServiceServer registers the SettlementServiceServer with the gRPC server.
func RegisterSettlementServiceServer(s *grpclib.Server, srv SettlementServiceServer) {
	s.RegisterService(&_SettlementService_serviceDesc, srv)
}

var _SettlementService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "tailfire.settlement.v1.SettlementService",
	HandlerType: (*SettlementServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GetTripFinancialSummary", Handler: _SettlementService_GetTripFinancialSummary_Handler},
		{MethodName: "GetExchangeRate", Handler: _SettlementService_GetExchangeRate_Handler},
		{MethodName: "ConvertAmount", Handler: _SettlementService_ConvertAmount_Handler},
		{MethodName: "RefreshExchangeRates", Handler: _SettlementService_RefreshExchangeRates_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _SettlementService_GetTripFinancialSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetTripFinancialSummaryRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(SettlementServiceServer).GetTripFinancialSummary(ctx, req)
}

func _SettlementService_GetExchangeRate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetExchangeRateRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(SettlementServiceServer).GetExchangeRate(ctx, req)
}

func _SettlementService_ConvertAmount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ConvertAmountRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(SettlementServiceServer).ConvertAmount(ctx, req)
}

func _SettlementService_RefreshExchangeRates_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RefreshExchangeRatesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(SettlementServiceServer).RefreshExchangeRates(ctx, req)
}
