package grpc

// proto.go defines the gRPC server interface for khaya.kpr.v1.KPRService.
// Messages travel with the json codec, so the request and response types are
// the application DTOs.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// KPRServiceServer is the server API for KPRService.
type KPRServiceServer interface {
	Simulate(context.Context, *SimulateRequest) (*SimulationResponse, error)
	Summarize(context.Context, *SummarizeRequest) (*SummaryResponse, error)
	Compare(context.Context, *CompareRequest) (*ComparisonResponse, error)
	EditCustomPlan(context.Context, *EditCustomPlanRequest) (*CustomPlanResponse, error)
	ListBanks(context.Context, *ListBanksRequest) (*BankListResponse, error)
	GetBank(context.Context, *GetBankRequest) (*BankResponse, error)
	UpsertBank(context.Context, *UpsertBankRequest) (*BankResponse, error)
	mustEmbedUnimplementedKPRServiceServer()
}

// UnimplementedKPRServiceServer provides forward-compatible default implementations.
type UnimplementedKPRServiceServer struct{}

func (UnimplementedKPRServiceServer) Simulate(context.Context, *SimulateRequest) (*SimulationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Simulate not implemented")
}
func (UnimplementedKPRServiceServer) Summarize(context.Context, *SummarizeRequest) (*SummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Summarize not implemented")
}
func (UnimplementedKPRServiceServer) Compare(context.Context, *CompareRequest) (*ComparisonResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Compare not implemented")
}
func (UnimplementedKPRServiceServer) EditCustomPlan(context.Context, *EditCustomPlanRequest) (*CustomPlanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EditCustomPlan not implemented")
}
func (UnimplementedKPRServiceServer) ListBanks(context.Context, *ListBanksRequest) (*BankListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListBanks not implemented")
}
func (UnimplementedKPRServiceServer) GetBank(context.Context, *GetBankRequest) (*BankResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBank not implemented")
}
func (UnimplementedKPRServiceServer) UpsertBank(context.Context, *UpsertBankRequest) (*BankResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpsertBank not implemented")
}
func (UnimplementedKPRServiceServer) mustEmbedUnimplementedKPRServiceServer() {}

// RegisterKPRServiceServer registers the KPRServiceServer with the gRPC server.
func RegisterKPRServiceServer(s *grpclib.Server, srv KPRServiceServer) {
	s.RegisterService(&_KPRService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

// Full method names, used by interceptors.
const (
	MethodSimulate       = "/khaya.kpr.v1.KPRService/Simulate"
	MethodSummarize      = "/khaya.kpr.v1.KPRService/Summarize"
	MethodCompare        = "/khaya.kpr.v1.KPRService/Compare"
	MethodEditCustomPlan = "/khaya.kpr.v1.KPRService/EditCustomPlan"
	MethodListBanks      = "/khaya.kpr.v1.KPRService/ListBanks"
	MethodGetBank        = "/khaya.kpr.v1.KPRService/GetBank"
	MethodUpsertBank     = "/khaya.kpr.v1.KPRService/UpsertBank"
)

//nolint:revive // gRPC handler registration
var _KPRService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "khaya.kpr.v1.KPRService",
	HandlerType: (*KPRServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Simulate", Handler: _KPRService_Simulate_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "Summarize", Handler: _KPRService_Summarize_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "Compare", Handler: _KPRService_Compare_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "EditCustomPlan", Handler: _KPRService_EditCustomPlan_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ListBanks", Handler: _KPRService_ListBanks_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetBank", Handler: _KPRService_GetBank_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "UpsertBank", Handler: _KPRService_UpsertBank_Handler},         //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _KPRService_Simulate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SimulateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KPRServiceServer).Simulate(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodSimulate,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KPRServiceServer).Simulate(ctx, req.(*SimulateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _KPRService_Summarize_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SummarizeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KPRServiceServer).Summarize(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodSummarize,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KPRServiceServer).Summarize(ctx, req.(*SummarizeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _KPRService_Compare_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CompareRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KPRServiceServer).Compare(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodCompare,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KPRServiceServer).Compare(ctx, req.(*CompareRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _KPRService_EditCustomPlan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(EditCustomPlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KPRServiceServer).EditCustomPlan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodEditCustomPlan,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KPRServiceServer).EditCustomPlan(ctx, req.(*EditCustomPlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _KPRService_ListBanks_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListBanksRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KPRServiceServer).ListBanks(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodListBanks,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KPRServiceServer).ListBanks(ctx, req.(*ListBanksRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _KPRService_GetBank_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBankRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KPRServiceServer).GetBank(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodGetBank,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KPRServiceServer).GetBank(ctx, req.(*GetBankRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _KPRService_UpsertBank_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpsertBankRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KPRServiceServer).UpsertBank(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodUpsertBank,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KPRServiceServer).UpsertBank(ctx, req.(*UpsertBankRequest))
	}
	return interceptor(ctx, in, info, handler)
}
