// Package grpcrest exposes the gRPC log service as JSON over HTTP through
// grpc-gateway, forwarding each request to the gRPC server.
package grpcrest

import (
	"context"
	"net/http"

	grpcv1 "github.com/Camping-RSO/camping-logs-ms/internal/controller/grpc/v1"
	gw "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const LogsPath = "/v1/logs"

// Dial opens a client connection to the local gRPC server.
func Dial(grpcPort string) (*grpc.ClientConn, error) {
	return grpc.NewClient("localhost:"+grpcPort,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
}

func RegisterServices(ctx context.Context, handler *gw.ServeMux, conn grpc.ClientConnInterface) error {
	if err := handler.HandlePath(http.MethodPost, LogsPath, createLog(handler, conn)); err != nil {
		return err
	}
	return handler.HandlePath(http.MethodGet, LogsPath, listLogs(handler, conn))
}

func createLog(mux *gw.ServeMux, conn grpc.ClientConnInterface) gw.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		inbound, outbound := gw.MarshalerForRequest(mux, r)

		in := &structpb.Struct{}
		if err := inbound.NewDecoder(r.Body).Decode(in); err != nil {
			gw.HTTPError(r.Context(), mux, outbound, w, r, status.Error(codes.InvalidArgument, err.Error()))
			return
		}

		forward(mux, conn, outbound, w, r, grpcv1.CreateLogMethod, in, &structpb.Struct{})
	}
}

func listLogs(mux *gw.ServeMux, conn grpc.ClientConnInterface) gw.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		_, outbound := gw.MarshalerForRequest(mux, r)
		forward(mux, conn, outbound, w, r, grpcv1.ListLogsMethod, &emptypb.Empty{}, &structpb.ListValue{})
	}
}

// forward invokes method on conn and writes out, or the mapped gRPC status, as the response.
func forward(mux *gw.ServeMux, conn grpc.ClientConnInterface, marshaler gw.Marshaler,
	w http.ResponseWriter, r *http.Request, method string, in, out proto.Message,
) {
	ctx, err := gw.AnnotateContext(r.Context(), mux, r, method, gw.WithHTTPPathPattern(LogsPath))
	if err != nil {
		gw.HTTPError(r.Context(), mux, marshaler, w, r, err)
		return
	}

	var md gw.ServerMetadata
	if err := conn.Invoke(ctx, method, in, out, grpc.Header(&md.HeaderMD), grpc.Trailer(&md.TrailerMD)); err != nil {
		gw.HTTPError(gw.NewServerMetadataContext(ctx, md), mux, marshaler, w, r, err)
		return
	}

	gw.ForwardResponseMessage(gw.NewServerMetadataContext(ctx, md), mux, marshaler, w, r, out)
}
