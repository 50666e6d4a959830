// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smtrpc

import (
	"context"

	"google.golang.org/grpc"
)

// TreeClient is the client stub a .proto compiler would emit alongside
// TreeServer.
type TreeClient interface {
	Update(ctx context.Context, in *UpdateRequest) (*UpdateResponse, error)
	Get(ctx context.Context, in *GetRequest) (*GetResponse, error)
	MerkleProof(ctx context.Context, in *MerkleProofRequest) (*MerkleProofResponse, error)
	Verify(ctx context.Context, in *VerifyRequest) (*VerifyResponse, error)
}

type treeClient struct {
	cc grpc.ClientConnInterface
}

// NewTreeClient returns a TreeClient that invokes the Tree service's
// methods over cc.
func NewTreeClient(cc grpc.ClientConnInterface) TreeClient {
	return &treeClient{cc: cc}
}

func (c *treeClient) Update(ctx context.Context, in *UpdateRequest) (*UpdateResponse, error) {
	out := new(UpdateResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Update", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treeClient) Get(ctx context.Context, in *GetRequest) (*GetResponse, error) {
	out := new(GetResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Get", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treeClient) MerkleProof(ctx context.Context, in *MerkleProofRequest) (*MerkleProofResponse, error) {
	out := new(MerkleProofResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/MerkleProof", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treeClient) Verify(ctx context.Context, in *VerifyRequest) (*VerifyResponse, error) {
	out := new(VerifyResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Verify", in, out); err != nil {
		return nil, err
	}
	return out, nil
}
