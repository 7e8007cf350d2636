// Package skinning computes the per-bone matrices a skinned mesh is drawn
// with. Matrices use mathgl's column-vector convention.
package skinning

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrPoseMismatch = errors.New("pose does not match skeleton")

// Joint is one bone of a skeleton.
type Joint struct {
	Name string
	// Parent is the index of the parent joint, or -1 for a root.
	Parent int
	// InvBindPose maps model space into the joint's bind space.
	InvBindPose mgl32.Mat4
}

type Skeleton struct {
	Joints []Joint
}

// Pose holds one model-space transform per joint, index-paired with the
// skeleton.
type Pose struct {
	GlobalPose []mgl32.Mat4
}

// BindPose is the pose the mesh was modelled in: each joint's global
// transform is the inverse of its inverse bind matrix.
func (s *Skeleton) BindPose() Pose {
	p := Pose{GlobalPose: make([]mgl32.Mat4, len(s.Joints))}
	for i, j := range s.Joints {
		p.GlobalPose[i] = j.InvBindPose.Inv()
	}
	return p
}

// Instance is a skinned mesh placed in the scene.
type Instance struct {
	skeleton *Skeleton
	bind     Pose
	bones    []mgl32.Mat4
}

func NewInstance(skeleton *Skeleton) *Instance {
	bones := make([]mgl32.Mat4, len(skeleton.Joints))
	for i := range bones {
		bones[i] = mgl32.Ident4()
	}
	return &Instance{skeleton: skeleton, bind: skeleton.BindPose(), bones: bones}
}

func (in *Instance) Skeleton() *Skeleton { return in.skeleton }
func (in *Instance) BindPose() Pose      { return in.bind }

// BoneMatrices returns the matrices from the last update, one per joint.
// The slice is reused between updates.
func (in *Instance) BoneMatrices() []mgl32.Mat4 {
	return in.bones
}

// UpdateBoneMatrices sets bone i to pose.GlobalPose[i] * InvBindPose[i].
func (in *Instance) UpdateBoneMatrices(pose Pose) error {
	if len(pose.GlobalPose) != len(in.skeleton.Joints) {
		return fmt.Errorf("%w: %d pose matrices for %d joints",
			ErrPoseMismatch, len(pose.GlobalPose), len(in.skeleton.Joints))
	}
	for i, j := range in.skeleton.Joints {
		in.bones[i] = pose.GlobalPose[i].Mul4(j.InvBindPose)
	}
	return nil
}
