package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "landdoc.v1.DocumentService"

type unaryMethod func(s *DocumentService, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

var methods = map[string]unaryMethod{
	"ExtractText":       (*DocumentService).ExtractText,
	"ExtractBatch":      (*DocumentService).ExtractBatch,
	"VerifyDocument":    (*DocumentService).VerifyDocument,
	"AnalyzeContract":   (*DocumentService).AnalyzeContract,
	"Ask":               (*DocumentService).Ask,
	"GetVerification":   (*DocumentService).GetVerification,
	"ListVerifications": (*DocumentService).ListVerifications,
	"GetContract":       (*DocumentService).GetContract,
	"ListContracts":     (*DocumentService).ListContracts,
	"GetReport":         (*DocumentService).GetReport,
	"ExportHistory":     (*DocumentService).ExportHistory,
	"IngestFile":        (*DocumentService).IngestFile,
	"IngestDirectory":   (*DocumentService).IngestDirectory,
	"Status":            (*DocumentService).Status,
}

// FullMethod returns "/landdoc.v1.DocumentService/<name>".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func handler(name string, fn unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		svc := srv.(*DocumentService)
		if interceptor == nil {
			return fn(svc, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return fn(svc, ctx, req.(*structpb.Struct))
		})
	}
}

func serviceDesc() *grpc.ServiceDesc {
	desc := &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*any)(nil),
		Metadata:    "landdoc/v1/document.proto",
	}
	for name, fn := range methods {
		desc.Methods = append(desc.Methods, grpc.MethodDesc{MethodName: name, Handler: handler(name, fn)})
	}
	return desc
}

// RegisterDocumentService registers svc on s.
func RegisterDocumentService(s grpc.ServiceRegistrar, svc *DocumentService) {
	s.RegisterService(serviceDesc(), svc)
}
