// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import "github.com/gogpu/shadergen/backend/clike"

// Reserved words, type names and builtins of GLSL 4.50 and GLSL ES 3.00.
const (
	reserved = `
active asm attribute break buffer case cast centroid class coherent
common const continue default discard do else enum extern external
false filter fixed flat for fvec2 fvec3 fvec4 goto half highp hvec2
hvec3 hvec4 if in inline inout input interface invariant layout long
lowp mediump namespace noinline noperspective out output partition
patch precise precision public readonly resource restrict return
sample sampler3DRect shared short sizeof smooth static struct
subroutine superp switch template this true typedef uniform union
unsigned using varying volatile while writeonly`

	types = `
bool bvec2 bvec3 bvec4 dmat2 dmat2x2 dmat2x3 dmat2x4 dmat3 dmat3x2
dmat3x3 dmat3x4 dmat4 dmat4x2 dmat4x3 dmat4x4 double dvec2 dvec3
dvec4 float int ivec2 ivec3 ivec4 mat2 mat2x2 mat2x3 mat2x4 mat3
mat3x2 mat3x3 mat3x4 mat4 mat4x2 mat4x3 mat4x4 uint uvec2 uvec3
uvec4 vec2 vec3 vec4 void`

	samplers = `
atomic_uint iimage1D iimage1DArray iimage2D iimage2DArray iimage2DMS
iimage2DMSArray iimage2DRect iimage3D iimageBuffer iimageCube
iimageCubeArray image1D image1DArray image2D image2DArray image2DMS
image2DMSArray image2DRect image3D imageBuffer imageCube
imageCubeArray isampler1D isampler1DArray isampler2D isampler2DArray
isampler2DMS isampler2DMSArray isampler2DRect isampler3D
isamplerBuffer isamplerCube isamplerCubeArray sampler sampler1D
sampler1DArray sampler1DArrayShadow sampler1DShadow sampler2D
sampler2DArray sampler2DArrayShadow sampler2DMS sampler2DMSArray
sampler2DRect sampler2DRectShadow sampler2DShadow sampler3D
samplerBuffer samplerCube samplerCubeArray samplerCubeArrayShadow
samplerCubeShadow uimage1D uimage1DArray uimage2D uimage2DArray
uimage2DMS uimage2DMSArray uimage2DRect uimage3D uimageBuffer
uimageCube uimageCubeArray usampler1D usampler1DArray usampler2D
usampler2DArray usampler2DMS usampler2DMSArray usampler2DRect
usampler3D usamplerBuffer usamplerCube usamplerCubeArray`

	builtins = `
gl_ClipDistance gl_CullDistance gl_FragCoord gl_FragDepth
gl_FrontFacing gl_GlobalInvocationID gl_HelperInvocation
gl_InstanceID gl_InvocationID gl_Layer gl_LocalInvocationID
gl_LocalInvocationIndex gl_MaxClipDistances
gl_MaxCombinedTextureImageUnits gl_MaxComputeAtomicCounterBuffers
gl_MaxComputeAtomicCounters gl_MaxComputeImageUniforms
gl_MaxComputeTextureImageUnits gl_MaxComputeUniformComponents
gl_MaxComputeWorkGroupCount gl_MaxComputeWorkGroupSize
gl_MaxCullDistances gl_MaxDrawBuffers gl_MaxFragmentUniformVectors
gl_MaxTextureImageUnits gl_MaxVaryingVectors gl_MaxVertexAttribs
gl_MaxVertexTextureImageUnits gl_MaxVertexUniformVectors
gl_NumWorkGroups gl_PatchVerticesIn gl_PerVertex gl_PointCoord
gl_PointSize gl_Position gl_PrimitiveID gl_PrimitiveIDIn gl_SampleID
gl_SampleMask gl_SampleMaskIn gl_SamplePosition gl_TessCoord
gl_TessLevelInner gl_TessLevelOuter gl_VertexID gl_ViewportIndex
gl_WorkGroupID gl_WorkGroupSize`

	functions = `
abs acos acosh all any asin asinh atan atanh atomicAdd atomicAnd
atomicCompSwap atomicCounter atomicCounterAdd atomicCounterAnd
atomicCounterCompSwap atomicCounterDecrement atomicCounterExchange
atomicCounterIncrement atomicCounterMax atomicCounterMin
atomicCounterOr atomicCounterSubtract atomicCounterXor
atomicExchange atomicMax atomicMin atomicOr atomicXor barrier
bitCount bitfieldExtract bitfieldInsert bitfieldReverse ceil clamp
cos cosh cross degrees determinant dFdx dFdxCoarse dFdxFine dFdy
dFdyCoarse dFdyFine distance dot EmitStreamVertex EmitVertex
EndPrimitive EndStreamPrimitive equal exp exp2 faceforward findLSB
findMSB floatBitsToInt floatBitsToUint floor fma fract frexp fwidth
fwidthCoarse fwidthFine greaterThan greaterThanEqual
groupMemoryBarrier imageAtomicAdd imageAtomicAnd imageAtomicCompSwap
imageAtomicExchange imageAtomicMax imageAtomicMin imageAtomicOr
imageAtomicXor imageLoad imageSamples imageSize imageStore
imulExtended intBitsToFloat interpolateAtCentroid
interpolateAtOffset interpolateAtSample inverse inversesqrt isinf
isnan ldexp length lessThan lessThanEqual log log2 main
matrixCompMult max memoryBarrier memoryBarrierAtomicCounter
memoryBarrierBuffer memoryBarrierImage memoryBarrierShared min mix
mod modf noise1 noise2 noise3 noise4 normalize not notEqual
outerProduct packDouble2x32 packHalf2x16 packSnorm2x16 packSnorm4x8
packUnorm2x16 packUnorm4x8 pow radians reflect refract round
roundEven sign sin sinh smoothstep sqrt step subpassLoad tan tanh
texelFetch texelFetchOffset texture textureGather
textureGatherOffset textureGatherOffsets textureGrad
textureGradOffset textureLod textureLodOffset textureOffset
textureProj textureProjGrad textureProjGradOffset textureProjLod
textureProjLodOffset textureProjOffset textureQueryLevels
textureQueryLod textureSamples textureSize transpose trunc uaddCarry
uintBitsToFloat umulExtended unpackDouble2x32 unpackHalf2x16
unpackSnorm2x16 unpackSnorm4x8 unpackUnorm2x16 unpackUnorm4x8
usubBorrow`
)

// keywords is the escape set of the GLSL dialects. Identifiers starting
// with "gl_" are reserved by the language and escaped separately.
var keywords = clike.NewKeywords(reserved, types, samplers, builtins, functions, "main")
