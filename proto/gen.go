// Package proto holds the protobuf sources for the control plane.
//
//go:generate protoc --go_out=../gen/proto/agentservice --go_opt=paths=source_relative --go-grpc_out=../gen/proto/agentservice --go-grpc_opt=paths=source_relative agentservice.proto
package proto
