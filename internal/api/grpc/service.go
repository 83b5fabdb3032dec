package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "ecoride.v1.BookingService"

// BookingServiceServer is the server API of ecoride.v1.BookingService. Every
// method takes and returns a google.protobuf.Struct.
type BookingServiceServer interface {
	AddCar(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCars(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateReservation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelReservation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateReservation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetReservation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchReservations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CalculateInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type structMethod func(BookingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call structMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BookingServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BookingServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var BookingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("AddCar", BookingServiceServer.AddCar),
		unaryHandler("ListCars", BookingServiceServer.ListCars),
		unaryHandler("CreateReservation", BookingServiceServer.CreateReservation),
		unaryHandler("CancelReservation", BookingServiceServer.CancelReservation),
		unaryHandler("UpdateReservation", BookingServiceServer.UpdateReservation),
		unaryHandler("GetReservation", BookingServiceServer.GetReservation),
		unaryHandler("SearchReservations", BookingServiceServer.SearchReservations),
		unaryHandler("CalculateInvoice", BookingServiceServer.CalculateInvoice),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ecoride/v1/booking.proto",
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingServiceDesc, srv)
}

// Register wires the booking service, health checks and reflection onto s.
func Register(s *grpc.Server, srv BookingServiceServer) *health.Server {
	RegisterBookingServiceServer(s, srv)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	// Register reflection service for grpcurl
	reflection.Register(s)
	return hs
}
